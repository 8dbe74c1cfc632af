// Package logger provides structured logging using Zap.
package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// RequestIDKey is the context key under which the request ID is stored.
const RequestIDKey = "requestID"

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder. For all other environments,
// it uses a human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// FromContext returns the global logger annotated with the request ID found
// in ctx, if any. A *gin.Context satisfies context.Context and exposes its
// keys through Value.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	log := Get()
	if ctx == nil {
		return log
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return log.With("request_id", id)
	}
	return log
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
