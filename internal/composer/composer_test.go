package composer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/chunker"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retriever"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/vector"
)

func TestBuildPromptLayout(t *testing.T) {
	chunks := []models.RetrievedChunk{
		{Chunk: models.Chunk{ID: "a_0", Content: "Paris is the capital of France."}},
		{Chunk: models.Chunk{ID: "b_0", Content: "France is in Europe."}},
	}
	prompt := BuildPrompt("What is the capital of France?", chunks)

	if !strings.Contains(prompt, "I don't know") {
		t.Error("prompt missing the refusal instruction")
	}
	if !strings.Contains(prompt, "Context:") {
		t.Error("prompt missing Context section")
	}
	if !strings.Contains(prompt, "Paris is the capital of France.") {
		t.Error("prompt missing first chunk")
	}
	if !strings.Contains(prompt, "France is in Europe.") {
		t.Error("prompt missing second chunk")
	}
	if !strings.Contains(prompt, "Question: What is the capital of France?") {
		t.Error("prompt missing question")
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Error("prompt does not end with Answer:")
	}
	// Chunks appear in retrieval order.
	if strings.Index(prompt, "Paris") > strings.Index(prompt, "Europe") {
		t.Error("chunks out of retrieval order")
	}
}

func TestBuildPromptNoChunks(t *testing.T) {
	prompt := BuildPrompt("anything", nil)
	if !strings.Contains(prompt, "Question: anything") {
		t.Error("prompt missing question")
	}
}

func newTestRetriever(t *testing.T, docs []models.Document, topK int) *retriever.Retriever {
	t.Helper()
	dir := t.TempDir()
	st, err := store.NewSQLiteStore(indexer.ChunkDBPath(dir))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	embedder := embedding.NewMockEmbedder(96)
	index, err := vector.NewFlatIndex(96)
	if err != nil {
		t.Fatalf("NewFlatIndex: %v", err)
	}
	ch, err := chunker.New(200, 0)
	if err != nil {
		t.Fatalf("chunker.New: %v", err)
	}
	if len(docs) > 0 {
		idx := indexer.New(st, embedder, index, ch, dir)
		if _, err := idx.BuildIndex(context.Background(), docs); err != nil {
			t.Fatalf("BuildIndex: %v", err)
		}
	}
	return retriever.New(embedder, index, st, topK)
}

func TestAskReturnsAnswerWithSources(t *testing.T) {
	docs := []models.Document{
		{ID: "sky", Source: "sky.txt", Content: "the sky is blue"},
		{ID: "grass", Source: "grass.txt", Content: "grass is green"},
	}
	gen := &llm.MockGenerator{Response: "The sky is blue."}
	c := New(newTestRetriever(t, docs, 2), gen)

	answer, err := c.Ask(context.Background(), "what color is the sky")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Text != "The sky is blue." {
		t.Errorf("answer = %q", answer.Text)
	}
	if len(answer.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(answer.Sources))
	}
	if answer.Sources[0].DocumentID != "sky" {
		t.Errorf("first source from %s, want sky", answer.Sources[0].DocumentID)
	}
	if len(gen.Prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.Prompts))
	}
	if !strings.Contains(gen.Prompts[0], "the sky is blue") {
		t.Error("prompt missing retrieved context")
	}
	if !strings.Contains(gen.Prompts[0], "what color is the sky") {
		t.Error("prompt missing question")
	}
}

func TestAskEmptyIndexPropagatesError(t *testing.T) {
	c := New(newTestRetriever(t, nil, 4), &llm.MockGenerator{Response: "unused"})
	_, err := c.Ask(context.Background(), "anything")
	if !errors.Is(err, retriever.ErrIndexUnavailable) {
		t.Errorf("err = %v, want ErrIndexUnavailable", err)
	}
}

func TestAskGenerationFailure(t *testing.T) {
	docs := []models.Document{{ID: "d", Content: "some indexed content"}}
	gen := &llm.MockGenerator{Err: llm.ErrGenerationFailed}
	c := New(newTestRetriever(t, docs, 4), gen)

	_, err := c.Ask(context.Background(), "some question")
	if !errors.Is(err, llm.ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
}
