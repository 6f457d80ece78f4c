// Package composer turns a question into a grounded answer with source attribution.
package composer

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retriever"
	"go.uber.org/zap"
)

// Composer retrieves context for a question, prompts the generative model,
// and packages the answer with its sources.
type Composer struct {
	retriever *retriever.Retriever
	generator llm.Generator
	logger    *zap.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets a logger for timing and debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// New creates a composer over the given retriever and generator.
func New(r *retriever.Retriever, g llm.Generator, opts ...Option) *Composer {
	c := &Composer{retriever: r, generator: g}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ask answers question using retrieved context. Retrieval errors propagate
// unchanged (including retriever.ErrIndexUnavailable); generation errors wrap
// llm.ErrGenerationFailed. There is no retry and no fallback answer.
func (c *Composer) Ask(ctx context.Context, question string) (*models.Answer, error) {
	start := time.Now()
	retrieved, err := c.retriever.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(question, retrieved)
	text, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("compose answer: %w", err)
	}

	sources := make([]models.Chunk, len(retrieved))
	for i, rc := range retrieved {
		sources[i] = rc.Chunk
	}
	if c.logger != nil {
		c.logger.Info("answer composed",
			zap.Int("sources", len(sources)),
			zap.Duration("elapsed", time.Since(start)))
	}
	return &models.Answer{Text: text, Sources: sources}, nil
}
