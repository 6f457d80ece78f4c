// Package llm provides the generative model client.
package llm

import (
	"context"
	"errors"
)

// ErrGenerationFailed wraps any generative model failure (HTTP error,
// non-200 status, timeout). Retrying is the caller's policy, not ours.
var ErrGenerationFailed = errors.New("answer generation failed")

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
