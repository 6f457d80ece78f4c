package e2e

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/chunker"
	"github.com/hyperjump/kotae/internal/composer"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/eval"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/loader"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retriever"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/vector"
)

const e2eDimensions = 128

func TestE2E_IngestAskEvaluate(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.jsonl")
	indexDir := filepath.Join(dir, "vectordb")

	corpus := BuildCorpus()
	if err := corpus.WriteJSONL(corpusPath); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	st, err := store.NewSQLiteStore(indexer.ChunkDBPath(indexDir))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	embedder := embedding.NewMockEmbedder(e2eDimensions)
	index, err := vector.NewFlatIndex(e2eDimensions)
	if err != nil {
		t.Fatal(err)
	}
	ch, err := chunker.New(512, 102)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// Ingest: the corpus includes one malformed line that must be skipped.
	ld := loader.New("text")
	docs, skipped, err := ld.Load(corpusPath)
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	if len(docs) != len(corpus.Records) {
		t.Fatalf("loaded %d documents, want %d", len(docs), len(corpus.Records))
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}

	idx := indexer.New(st, embedder, index, ch, indexDir)
	n, err := idx.BuildIndex(ctx, docs)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	if n == 0 {
		t.Fatal("no chunks indexed")
	}

	// A fresh process loads the persisted index and answers from it.
	reloaded, err := vector.NewFlatIndex(e2eDimensions)
	if err != nil {
		t.Fatal(err)
	}
	if err := reloaded.Load(indexer.VectorFilePath(indexDir)); err != nil {
		t.Fatalf("load persisted index: %v", err)
	}
	if reloaded.Size() != n {
		t.Fatalf("reloaded index size = %d, want %d", reloaded.Size(), n)
	}

	gen := &llm.MockGenerator{Response: "Answer grounded in the retrieved context."}
	ret := retriever.New(embedder, reloaded, st, 2)
	cmp := composer.New(ret, gen)

	evalLogger, err := eval.NewLogger(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("eval logger: %v", err)
	}

	for _, tc := range corpus.TestCases {
		t.Run(tc.Description, func(t *testing.T) {
			answer, err := cmp.Ask(ctx, tc.Question)
			if err != nil {
				t.Fatalf("ask failed: %v", err)
			}
			if len(answer.Sources) == 0 {
				t.Fatal("no sources attached to answer")
			}
			if answer.Sources[0].DocumentID != tc.ExpectedDocID {
				t.Errorf("top source = %s, want %s", answer.Sources[0].DocumentID, tc.ExpectedDocID)
			}

			sourceIDs := make([]string, 0, len(answer.Sources))
			for _, s := range answer.Sources {
				sourceIDs = append(sourceIDs, s.ID)
			}
			if _, err := evalLogger.Log(models.EvaluationInput{
				Question:  tc.Question,
				Answer:    answer.Text,
				Rating:    5,
				SourceIDs: sourceIDs,
			}); err != nil {
				t.Fatalf("log evaluation: %v", err)
			}
		})
	}

	// Every prompt carried the grounding instruction and its question.
	if len(gen.Prompts) != len(corpus.TestCases) {
		t.Fatalf("generator called %d times, want %d", len(gen.Prompts), len(corpus.TestCases))
	}
	for i, prompt := range gen.Prompts {
		if !strings.Contains(prompt, "Context:") {
			t.Errorf("prompt %d missing context section", i)
		}
		if !strings.Contains(prompt, corpus.TestCases[i].Question) {
			t.Errorf("prompt %d missing its question", i)
		}
	}

	// The evaluation log holds one record per question and survives re-reading.
	records, err := eval.ReadLog(evalLogger.Path())
	if err != nil {
		t.Fatalf("read eval log: %v", err)
	}
	if len(records) != len(corpus.TestCases) {
		t.Errorf("eval log has %d records, want %d", len(records), len(corpus.TestCases))
	}

	// The review index finds a logged question by one of its words.
	review, err := eval.OpenReview(evalLogger.Path())
	if err != nil {
		t.Fatalf("open review: %v", err)
	}
	defer review.Close()
	hits, err := review.Search("caffeine", 10)
	if err != nil {
		t.Fatalf("review search: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("review search found %d records, want 1", len(hits))
	}
}
