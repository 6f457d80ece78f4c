package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaGeneratorReturnsResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["stream"] != false {
			t.Errorf("stream = %v, want false", req["stream"])
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "Paris."})
	}))
	defer ts.Close()

	g := NewOllamaGenerator(ts.URL, "tinyllama", 10*time.Second)
	out, err := g.Generate(context.Background(), "capital of France?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "Paris." {
		t.Errorf("response = %q", out)
	}
}

func TestOllamaGeneratorWrapsFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	g := NewOllamaGenerator(ts.URL, "tinyllama", 10*time.Second)
	_, err := g.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestOllamaGeneratorUnreachable(t *testing.T) {
	g := NewOllamaGenerator("http://127.0.0.1:1/api/generate", "tinyllama", time.Second)
	_, err := g.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
}
