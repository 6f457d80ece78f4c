// Package chunker splits documents into overlapping text chunks on natural boundaries.
package chunker

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// defaultSeparators is the boundary priority: paragraph break, line break,
// sentence end, word boundary, then single characters as a last resort.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Chunker splits text into chunks of at most chunkSize characters, with
// chunkOverlap characters shared between consecutive chunks of one document.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
	logger       *zap.Logger
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithLogger sets a logger for chunk count reporting.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chunker) { c.logger = l }
}

// New creates a chunker. chunkSize must be positive and chunkOverlap must
// satisfy 0 <= chunkOverlap < chunkSize.
func New(chunkSize, chunkOverlap int, opts ...Option) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must satisfy 0 <= overlap < size, got %d/%d", chunkOverlap, chunkSize)
	}
	c := &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Split splits text into chunks. Boundaries fall on the coarsest separator
// that yields units within the chunk size; units are merged greedily with
// the configured overlap carried between consecutive chunks.
func (c *Chunker) Split(text string) []string {
	pieces := c.split(text, c.separators)
	chunks := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks
}

// ChunkDocuments splits each document and tags chunks with the parent's
// identity. Chunk IDs are "<docID>_<index>" so citations can name the exact
// chunk while DocumentID keeps document-level attribution.
func (c *Chunker) ChunkDocuments(docs []models.Document) []models.Chunk {
	var chunks []models.Chunk
	for _, doc := range docs {
		for i, content := range c.Split(doc.Content) {
			chunks = append(chunks, models.Chunk{
				ID:         fmt.Sprintf("%s_%d", doc.ID, i),
				DocumentID: doc.ID,
				Source:     doc.Source,
				Content:    content,
				ChunkIndex: i,
			})
		}
	}
	if c.logger != nil {
		c.logger.Info("documents chunked",
			zap.Int("documents", len(docs)),
			zap.Int("chunks", len(chunks)))
	}
	return chunks
}

// split recursively splits text on the first separator, recursing with finer
// separators for any unit that still exceeds the chunk size.
func (c *Chunker) split(text string, separators []string) []string {
	if text == "" {
		return nil
	}
	sep := separators[len(separators)-1]
	var finer []string
	for i, s := range separators {
		if s == "" || strings.Contains(text, s) {
			sep = s
			finer = separators[i+1:]
			break
		}
	}

	units := splitKeepSeparator(text, sep)
	var merged []string
	var fitting []string
	for _, u := range units {
		if len(u) <= c.chunkSize {
			fitting = append(fitting, u)
			continue
		}
		merged = append(merged, c.merge(fitting)...)
		fitting = nil
		if len(finer) == 0 {
			// No finer separator left; keep the oversized unit whole.
			merged = append(merged, u)
			continue
		}
		merged = append(merged, c.split(u, finer)...)
	}
	merged = append(merged, c.merge(fitting)...)
	return merged
}

// merge joins consecutive units into chunks of at most chunkSize characters,
// carrying roughly chunkOverlap trailing characters into the next chunk.
func (c *Chunker) merge(units []string) []string {
	if len(units) == 0 {
		return nil
	}
	var chunks []string
	var window []string
	total := 0
	for _, u := range units {
		if total+len(u) > c.chunkSize && len(window) > 0 {
			chunks = append(chunks, strings.Join(window, ""))
			for len(window) > 0 && (total > c.chunkOverlap || total+len(u) > c.chunkSize) {
				total -= len(window[0])
				window = window[1:]
			}
		}
		window = append(window, u)
		total += len(u)
	}
	if len(window) > 0 {
		chunks = append(chunks, strings.Join(window, ""))
	}
	return chunks
}

// splitKeepSeparator splits text on sep keeping the separator attached to the
// preceding unit, so no characters are lost when units are rejoined. An empty
// separator splits into single characters.
func splitKeepSeparator(text, sep string) []string {
	if sep == "" {
		return strings.Split(text, "")
	}
	return strings.SplitAfter(text, sep)
}
