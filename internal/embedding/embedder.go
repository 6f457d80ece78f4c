// Package embedding provides text embedding via an Ollama-compatible API, with caching.
package embedding

import "context"

// Embedder produces vector embeddings for text. The same embedder (model and
// version) must be used for indexing and querying, or distances are meaningless.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
