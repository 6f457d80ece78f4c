package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaEmbedderNormalizesResponse(t *testing.T) {
	var gotModel, gotPrompt string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotModel = req["model"]
		gotPrompt = req["prompt"]
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{3, 4, 0},
		})
	}))
	defer ts.Close()

	e := NewOllamaEmbedder(ts.URL, "nomic-embed-text", 3, 5*time.Second)
	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if gotModel != "nomic-embed-text" || gotPrompt != "hello" {
		t.Errorf("request = %s/%s", gotModel, gotPrompt)
	}
	// 3-4-0 normalizes to 0.6-0.8-0.
	if vec[0] < 0.59 || vec[0] > 0.61 || vec[1] < 0.79 || vec[1] > 0.81 {
		t.Errorf("vector not normalized: %v", vec)
	}
}

func TestOllamaEmbedderDimensionMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{1, 2},
		})
	}))
	defer ts.Close()

	e := NewOllamaEmbedder(ts.URL, "m", 768, 5*time.Second)
	if _, err := e.Embed(context.Background(), "text"); err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestOllamaEmbedderServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer ts.Close()

	e := NewOllamaEmbedder(ts.URL, "missing", 3, 5*time.Second)
	if _, err := e.Embed(context.Background(), "text"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
