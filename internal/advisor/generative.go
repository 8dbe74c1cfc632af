package advisor

import (
	"context"
	"strings"

	"github.com/jodijonatan/cashnote/internal/analytics"
)

// Generative forwards prompts to a TextGenerator and relays its answer.
type Generative struct {
	gen TextGenerator
}

// NewGenerative creates an Advisor backed by gen.
func NewGenerative(gen TextGenerator) *Generative {
	return &Generative{gen: gen}
}

// Advise implements Advisor.
func (g *Generative) Advise(ctx context.Context, snap analytics.Snapshot, question string) (string, error) {
	out, err := g.gen.Generate(ctx, advicePrompt(snap, question))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Analyze implements Advisor.
func (g *Generative) Analyze(ctx context.Context, breakdown analytics.Breakdown) (string, error) {
	out, err := g.gen.Generate(ctx, analysisPrompt(breakdown))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
