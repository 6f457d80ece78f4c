// Package store persists documents and chunks alongside the vector segment.
package store

import (
	"context"

	"github.com/hyperjump/kotae/internal/models"
)

// Store defines document and chunk persistence operations. The index pipeline
// is the single writer; query handlers only read.
type Store interface {
	SaveDocument(ctx context.Context, doc *models.Document) error
	CountDocuments(ctx context.Context) (int64, error)

	BatchSaveChunks(ctx context.Context, chunks []models.Chunk) error
	GetChunk(ctx context.Context, id string) (*models.Chunk, error)
	GetChunks(ctx context.Context, ids []string) ([]models.Chunk, error)
	CountChunks(ctx context.Context) (int64, error)

	Close() error
}
