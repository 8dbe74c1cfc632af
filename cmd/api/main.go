package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jodijonatan/cashnote/internal/advisor"
	"github.com/jodijonatan/cashnote/internal/config"
	"github.com/jodijonatan/cashnote/internal/database"
	"github.com/jodijonatan/cashnote/internal/logger"
	"github.com/jodijonatan/cashnote/internal/middleware"
	"github.com/jodijonatan/cashnote/internal/oauth"
	"github.com/jodijonatan/cashnote/internal/server"
	"github.com/jodijonatan/cashnote/internal/services"
	"github.com/jodijonatan/cashnote/internal/validator"
)

// @title           Cashnote API
// @version         1.0
// @description     Cashnote is a personal finance API for recording income and expenses, tracking savings targets and asking a financial advisor.

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const (
	oauthStateTTL   = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	transactionService := services.NewTransactionService(db)
	adv, err := newAdvisor(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create advisor: %w", err)
	}
	deps := server.Deps{
		DB:                 db,
		Users:              services.NewUserService(db),
		Transactions:       transactionService,
		Targets:            services.NewTargetService(db),
		Advisor:            services.NewAdvisorService(db, transactionService, adv),
		Audit:              services.NewAuditService(db),
		Tokens:             middleware.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpirationDur),
		FrontendURL:        cfg.FrontendURL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}

	if cfg.GoogleOAuthEnabled() {
		states, err := oauth.NewStateStore(cfg.JWTSecret, oauthStateTTL)
		if err != nil {
			return fmt.Errorf("failed to create oauth state store: %w", err)
		}
		defer states.Close()
		deps.Google = oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL, states)
	} else {
		log.Warn("GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set; Google sign-in disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Cashnote backend server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// newAdvisor selects the advice provider. A nil result leaves the advisor
// endpoints answering "not configured".
func newAdvisor(ctx context.Context, cfg *config.Config) (advisor.Advisor, error) {
	log := logger.Get()

	if cfg.AdvisorProvider == config.AdvisorProviderRules {
		log.Info("Using rule-based advisor")
		return advisor.NewRuleBased(), nil
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set; advisor endpoints are disabled")
		return nil, nil
	}
	gemini, err := advisor.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.AdvisorTimeout)
	if err != nil {
		return nil, err
	}
	log.Infow("Using Gemini advisor", "model", cfg.GeminiModel)
	return advisor.NewGenerative(gemini), nil
}
