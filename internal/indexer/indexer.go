// Package indexer builds the persistent vector index from documents.
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/kotae/internal/chunker"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// VectorFileName is the vector segment file inside the index directory.
const VectorFileName = "vectors.idx"

// ChunkDBFileName is the chunk database file inside the index directory.
const ChunkDBFileName = "chunks.db"

// VectorFilePath returns the vector segment path under dir.
func VectorFilePath(dir string) string {
	return filepath.Join(dir, VectorFileName)
}

// ChunkDBPath returns the chunk database path under dir.
func ChunkDBPath(dir string) string {
	return filepath.Join(dir, ChunkDBFileName)
}

// Indexer chunks documents, embeds the chunks, and writes them into the
// store and the vector index rooted at the index directory.
type Indexer struct {
	store    store.Store
	embedder embedding.Embedder
	index    vector.Index
	chunker  *chunker.Chunker
	dir      string
	logger   *zap.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets a logger for progress reporting.
func WithLogger(l *zap.Logger) Option {
	return func(idx *Indexer) { idx.logger = l }
}

// New creates an indexer writing to the index directory dir.
func New(st store.Store, embedder embedding.Embedder, index vector.Index, ch *chunker.Chunker, dir string, opts ...Option) *Indexer {
	idx := &Indexer{
		store:    st,
		embedder: embedder,
		index:    index,
		chunker:  ch,
		dir:      dir,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// BuildIndex chunks and embeds docs, stores the chunks, adds their vectors,
// and persists the vector segment. Returns the chunk count. The index
// directory is created if absent. Re-running over a directory that already
// holds data appends; entries are not deduplicated.
func (idx *Indexer) BuildIndex(ctx context.Context, docs []models.Document) (int, error) {
	if err := os.MkdirAll(idx.dir, 0755); err != nil {
		return 0, fmt.Errorf("create index directory: %w", err)
	}

	for i := range docs {
		if err := idx.store.SaveDocument(ctx, &docs[i]); err != nil {
			return 0, fmt.Errorf("store document %s: %w", docs[i].ID, err)
		}
	}

	chunks := idx.chunker.ChunkDocuments(docs)
	if len(chunks) == 0 {
		if idx.logger != nil {
			idx.logger.Warn("no chunks produced", zap.Int("documents", len(docs)))
		}
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}
	vectors, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	if err := idx.store.BatchSaveChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}

	ids := make([]string, len(chunks))
	for i, ch := range chunks {
		ids[i] = ch.ID
	}
	if err := idx.index.Add(ctx, ids, vectors); err != nil {
		return 0, fmt.Errorf("index vectors: %w", err)
	}
	if err := idx.index.Save(VectorFilePath(idx.dir)); err != nil {
		return 0, fmt.Errorf("save vector index: %w", err)
	}

	if idx.logger != nil {
		idx.logger.Info("index built",
			zap.Int("documents", len(docs)),
			zap.Int("chunks", len(chunks)),
			zap.String("dir", idx.dir))
	}
	return len(chunks), nil
}
