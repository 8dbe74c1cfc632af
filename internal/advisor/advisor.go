// Package advisor turns a user's financial snapshot into natural-language
// commentary, either through a generative text provider or from templates.
package advisor

import (
	"context"
	"errors"

	"github.com/jodijonatan/cashnote/internal/analytics"
)

// Provider failures that callers map to distinct responses.
var (
	ErrQuotaExceeded = errors.New("provider quota exceeded")
	ErrInvalidAPIKey = errors.New("provider API key is invalid")
)

// Advisor answers free-text questions and comments on spending breakdowns.
type Advisor interface {
	// Advise answers question using the numeric context in snap.
	Advise(ctx context.Context, snap analytics.Snapshot, question string) (string, error)

	// Analyze comments on the expense breakdown of a trailing window.
	Analyze(ctx context.Context, breakdown analytics.Breakdown) (string, error)
}

// TextGenerator produces a completion for a single prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
