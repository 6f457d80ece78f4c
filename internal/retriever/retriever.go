// Package retriever performs top-K similarity search over the vector index.
package retriever

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// ErrIndexUnavailable is returned when retrieval is attempted against a
// missing or empty index. The caller should build the index first.
var ErrIndexUnavailable = errors.New("vector index is missing or empty")

// Retriever embeds queries and returns the nearest chunks.
type Retriever struct {
	embedder embedding.Embedder
	index    vector.Index
	store    store.Store
	topK     int
	logger   *zap.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets a logger for retrieval debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Retriever) { r.logger = l }
}

// New creates a retriever returning up to topK chunks per query.
// The embedder must be the same model the index was built with.
func New(embedder embedding.Embedder, index vector.Index, st store.Store, topK int, opts ...Option) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	r := &Retriever{
		embedder: embedder,
		index:    index,
		store:    st,
		topK:     topK,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve embeds query and returns min(topK, index size) chunks ordered by
// ascending distance. Returns ErrIndexUnavailable when the index holds no vectors.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.RetrievedChunk, error) {
	if r.index.Size() == 0 {
		return nil, ErrIndexUnavailable
	}
	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := r.index.Search(ctx, queryVec, r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	ids := make([]string, len(hits))
	distByID := make(map[string]float64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
		distByID[h.ID] = h.Distance
	}
	chunks, err := r.store.GetChunks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve chunks: %w", err)
	}

	results := make([]models.RetrievedChunk, 0, len(chunks))
	for _, ch := range chunks {
		results = append(results, models.RetrievedChunk{Chunk: ch, Distance: distByID[ch.ID]})
	}
	if r.logger != nil {
		r.logger.Debug("retrieved chunks",
			zap.String("query", query),
			zap.Int("results", len(results)))
	}
	return results, nil
}

// TopK returns the configured number of passages per query.
func (r *Retriever) TopK() int {
	return r.topK
}
