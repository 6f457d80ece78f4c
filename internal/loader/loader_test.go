package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpus(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, fmt.Sprintf(`{"text": "document %d", "source": "src%d.txt", "id": "doc%d"}`, i, i, i))
	}
	lines = append(lines,
		`{not valid json`,
		`{"source": "no-content.txt"}`,
		`{"text": 42}`,
	)

	ld := New("text")
	docs, skipped, err := ld.Load(writeCorpus(t, lines))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 10 {
		t.Errorf("loaded %d documents, want 10", len(docs))
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
	if docs[0].ID != "doc0" || docs[0].Source != "src0.txt" || docs[0].Content != "document 0" {
		t.Errorf("first document = %+v", docs[0])
	}
}

func TestLoadIgnoresBlankAndCommentLines(t *testing.T) {
	lines := []string{
		`{"text": "first"}`,
		``,
		`// a comment line`,
		`   `,
		`{"text": "second"}`,
	}
	ld := New("text")
	docs, skipped, err := ld.Load(writeCorpus(t, lines))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("loaded %d documents, want 2", len(docs))
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
}

func TestLoadDefaultsForMissingFields(t *testing.T) {
	lines := []string{`{"text": "content without id or source"}`}
	ld := New("text")
	docs, _, err := ld.Load(writeCorpus(t, lines))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("loaded %d documents, want 1", len(docs))
	}
	if docs[0].Source != "Unknown" {
		t.Errorf("source = %q, want Unknown", docs[0].Source)
	}
	if docs[0].ID != "line_1" {
		t.Errorf("id = %q, want line_1", docs[0].ID)
	}
}

func TestLoadCustomContentKey(t *testing.T) {
	lines := []string{
		`{"body": "from body key", "text": "ignored"}`,
	}
	ld := New("body")
	docs, _, err := ld.Load(writeCorpus(t, lines))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 1 || docs[0].Content != "from body key" {
		t.Errorf("docs = %+v, want content from body key", docs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	ld := New("text")
	_, _, err := ld.Load(filepath.Join(t.TempDir(), "nope.jsonl"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
