package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcherDebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.jsonl")
	if err := os.WriteFile(path, []byte("initial\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var mu sync.Mutex
	var changes []string
	w := New([]string{path}, func(p string) {
		mu.Lock()
		changes = append(changes, p)
		mu.Unlock()
	}, WithDebounce(100*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// Several writes in quick succession collapse into one callback.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("update\n"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(changes)
		mu.Unlock()
		if n >= 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("callback never fired")
		case <-time.After(20 * time.Millisecond):
		}
	}

	// Allow any stray timers to fire, then confirm the writes coalesced.
	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(changes) > 2 {
		t.Errorf("callback fired %d times for 5 rapid writes, want 1-2", len(changes))
	}
	if changes[0] != path {
		t.Errorf("callback path = %q, want %q", changes[0], path)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "corpus.jsonl")
	other := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(watched, []byte("x\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var mu sync.Mutex
	fired := false
	w := New([]string{watched}, func(string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	}, WithDebounce(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(other, []byte("noise\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Error("callback fired for an unwatched file")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	if err := os.WriteFile(path, []byte("x\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	w := New([]string{path}, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
}
