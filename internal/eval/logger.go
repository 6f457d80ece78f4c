// Package eval provides the append-only evaluation log and its review search.
package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/models"
)

// Logger appends evaluation records to a JSONL file. The file name carries
// the logger's start time, so every process lifetime gets a fresh log and
// records are never appended across runs.
type Logger struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewLogger creates the log directory if needed and fixes the log file name.
func NewLogger(dir string) (*Logger, error) {
	return newLogger(dir, time.Now)
}

func newLogger(dir string, now func() time.Time) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create eval log dir: %w", err)
	}
	name := fmt.Sprintf("evaluation_%s.jsonl", now().Format("20060102_150405"))
	return &Logger{
		path: filepath.Join(dir, name),
		now:  now,
	}, nil
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Log fills ID and Timestamp, appends the record as one JSON line, and
// returns it. The append happens under a lock as a single open-write-close so
// concurrent callers never interleave. Rating validity is the caller's
// responsibility; the logger trusts its input.
func (l *Logger) Log(input models.EvaluationInput) (*models.EvaluationRecord, error) {
	record := &models.EvaluationRecord{
		ID:        uuid.New().String(),
		Timestamp: l.now(),
		Question:  input.Question,
		Answer:    input.Answer,
		Rating:    input.Rating,
		Feedback:  input.Feedback,
		SourceIDs: input.SourceIDs,
		Metadata:  input.Metadata,
	}
	if record.Metadata == nil {
		record.Metadata = map[string]interface{}{}
	}
	line, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation record: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open eval log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return nil, fmt.Errorf("append eval record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return nil, fmt.Errorf("flush eval log: %w", err)
	}
	return record, nil
}

// ReadLog reads all records from a JSONL evaluation log file.
func ReadLog(path string) ([]models.EvaluationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open eval log: %w", err)
	}
	defer f.Close()

	var records []models.EvaluationRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec models.EvaluationRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parse eval record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read eval log: %w", err)
	}
	return records, nil
}
