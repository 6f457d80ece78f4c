package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chunks.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSaveAndCountDocuments(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, doc := range []models.Document{
		{ID: "d1", Source: "a.txt", Content: "first"},
		{ID: "d2", Source: "b.txt", Content: "second"},
	} {
		if err := st.SaveDocument(ctx, &doc); err != nil {
			t.Fatalf("SaveDocument: %v", err)
		}
	}
	n, err := st.CountDocuments(ctx)
	if err != nil {
		t.Fatalf("CountDocuments: %v", err)
	}
	if n != 2 {
		t.Errorf("documents = %d, want 2", n)
	}

	// Saving the same ID again replaces, not duplicates.
	if err := st.SaveDocument(ctx, &models.Document{ID: "d1", Content: "updated"}); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	n, _ = st.CountDocuments(ctx)
	if n != 2 {
		t.Errorf("documents after replace = %d, want 2", n)
	}
}

func TestBatchSaveAndGetChunks(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	if err := st.SaveDocument(ctx, &models.Document{ID: "doc", Content: "full text"}); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	chunks := []models.Chunk{
		{ID: "doc_0", DocumentID: "doc", Source: "s.txt", Content: "part zero", ChunkIndex: 0},
		{ID: "doc_1", DocumentID: "doc", Source: "s.txt", Content: "part one", ChunkIndex: 1},
		{ID: "doc_2", DocumentID: "doc", Source: "s.txt", Content: "part two", ChunkIndex: 2},
	}
	if err := st.BatchSaveChunks(ctx, chunks); err != nil {
		t.Fatalf("BatchSaveChunks: %v", err)
	}

	n, err := st.CountChunks(ctx)
	if err != nil {
		t.Fatalf("CountChunks: %v", err)
	}
	if n != 3 {
		t.Errorf("chunks = %d, want 3", n)
	}

	got, err := st.GetChunk(ctx, "doc_1")
	if err != nil {
		t.Fatalf("GetChunk: %v", err)
	}
	if got.Content != "part one" || got.ChunkIndex != 1 {
		t.Errorf("chunk = %+v", got)
	}
}

func TestGetChunksPreservesRequestedOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	if err := st.SaveDocument(ctx, &models.Document{ID: "doc", Content: "text"}); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if err := st.BatchSaveChunks(ctx, []models.Chunk{
		{ID: "doc_0", DocumentID: "doc", Content: "zero"},
		{ID: "doc_1", DocumentID: "doc", Content: "one"},
		{ID: "doc_2", DocumentID: "doc", Content: "two"},
	}); err != nil {
		t.Fatalf("BatchSaveChunks: %v", err)
	}

	got, err := st.GetChunks(ctx, []string{"doc_2", "doc_0", "missing", "doc_1"})
	if err != nil {
		t.Fatalf("GetChunks: %v", err)
	}
	want := []string{"doc_2", "doc_0", "doc_1"}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestGetChunkNotFound(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.GetChunk(context.Background(), "absent"); err == nil {
		t.Error("expected error for absent chunk")
	}
}
