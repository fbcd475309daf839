// Package llm generates answers through a ranked chain of model providers.
package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Generation parameters shared by every provider.
const (
	genTemperature = 0.3
	genMaxTokens   = 1024
)

// Provider is one answer-capable model backend. Complete receives the system
// instruction and user message separately; providers with a single-message
// protocol concatenate them.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// GenerationError reports that every provider in the chain failed. It keeps
// each attempt's error for diagnostics.
type GenerationError struct {
	Attempts []error
}

func (e *GenerationError) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return "all answer providers failed: " + strings.Join(msgs, "; ")
}

func (e *GenerationError) Unwrap() []error { return e.Attempts }

// Generator tries providers strictly in order until one succeeds. Adding a
// provider is a wiring change, not new control flow.
type Generator struct {
	providers []Provider
	logger    *zap.Logger
}

func NewGenerator(providers []Provider, logger *zap.Logger) *Generator {
	return &Generator{providers: providers, logger: logger}
}

// Generate produces an answer to question grounded in the retrieved context.
// Each provider attempt fully completes or errors before the next begins.
func (g *Generator) Generate(ctx context.Context, question, contextText string) (string, error) {
	system := systemPrompt
	user := buildUserPrompt(contextText, question)

	var attempts []error
	for _, p := range g.providers {
		answer, err := p.Complete(ctx, system, user)
		if err != nil {
			g.logger.Warn("answer provider failed",
				zap.String("provider", p.Name()),
				zap.Error(err))
			attempts = append(attempts, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return answer, nil
	}
	return "", &GenerationError{Attempts: attempts}
}
