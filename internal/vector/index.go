// Package vector provides a persistent vector index with similarity search.
package vector

import "context"

// Index defines vector storage and nearest-neighbor search.
type Index interface {
	Add(ctx context.Context, ids []string, vectors [][]float32) error
	// Search returns up to k results ordered by ascending distance.
	Search(ctx context.Context, query []float32, k int) ([]*Result, error)
	Save(path string) error
	Load(path string) error
	Size() int
	Close() error
}

// Result is a single search hit. ID is the chunk ID; Distance is
// 1 - cosine similarity for normalized vectors, so 0 means identical.
type Result struct {
	ID       string
	Distance float64
}
