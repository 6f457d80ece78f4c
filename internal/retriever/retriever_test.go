package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperjump/kotae/internal/chunker"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/vector"
)

func buildTestIndex(t *testing.T, docs []models.Document) (*store.SQLiteStore, *vector.FlatIndex, embedding.Embedder) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.NewSQLiteStore(indexer.ChunkDBPath(dir))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	embedder := embedding.NewMockEmbedder(128)
	index, err := vector.NewFlatIndex(128)
	if err != nil {
		t.Fatalf("NewFlatIndex: %v", err)
	}
	ch, err := chunker.New(200, 0)
	if err != nil {
		t.Fatalf("chunker.New: %v", err)
	}
	idx := indexer.New(st, embedder, index, ch, dir)
	if _, err := idx.BuildIndex(context.Background(), docs); err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	return st, index, embedder
}

func TestRetrieveEmptyIndex(t *testing.T) {
	st, err := store.NewSQLiteStore(indexer.ChunkDBPath(t.TempDir()))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer st.Close()
	index, err := vector.NewFlatIndex(128)
	if err != nil {
		t.Fatalf("NewFlatIndex: %v", err)
	}
	r := New(embedding.NewMockEmbedder(128), index, st, 4)
	_, err = r.Retrieve(context.Background(), "anything")
	if !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("err = %v, want ErrIndexUnavailable", err)
	}
}

func TestRetrieveRanksSharedVocabularyFirst(t *testing.T) {
	docs := []models.Document{
		{ID: "sky", Content: "the sky is blue and wide"},
		{ID: "grass", Content: "green grass grows in the meadow"},
		{ID: "ocean", Content: "waves crash on the rocky shore"},
	}
	st, index, embedder := buildTestIndex(t, docs)
	r := New(embedder, index, st, 3)

	results, err := r.Retrieve(context.Background(), "what color is the sky")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results")
	}
	if results[0].Chunk.DocumentID != "sky" {
		t.Errorf("top result from %s, want sky", results[0].Chunk.DocumentID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Distance < results[i-1].Distance {
			t.Errorf("results not in ascending distance order at %d", i)
		}
	}
}

func TestRetrieveReturnsAtMostTopK(t *testing.T) {
	docs := []models.Document{
		{ID: "a", Content: "alpha"},
		{ID: "b", Content: "beta"},
		{ID: "c", Content: "gamma"},
		{ID: "d", Content: "delta"},
		{ID: "e", Content: "epsilon"},
	}
	st, index, embedder := buildTestIndex(t, docs)
	r := New(embedder, index, st, 2)

	results, err := r.Retrieve(context.Background(), "alpha beta")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestRetrieveClampsToIndexSize(t *testing.T) {
	docs := []models.Document{{ID: "only", Content: "a single document"}}
	st, index, embedder := buildTestIndex(t, docs)
	r := New(embedder, index, st, 10)

	results, err := r.Retrieve(context.Background(), "single")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}
