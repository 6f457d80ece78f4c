package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// conversationStore persists the chat front-end's conversation history as a
// JSON array in a single file. The payload is opaque to the server.
type conversationStore struct {
	path string
	mu   sync.Mutex
}

func newConversationStore(path string) *conversationStore {
	return &conversationStore{path: path}
}

// load returns the stored conversations, or an empty array when no file exists.
func (c *conversationStore) load() (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return json.RawMessage("[]"), nil
		}
		return nil, fmt.Errorf("read conversations: %w", err)
	}
	return json.RawMessage(data), nil
}

// save replaces the stored conversations.
func (c *conversationStore) save(data json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create conversations dir: %w", err)
		}
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("write conversations: %w", err)
	}
	return nil
}

func (s *Server) handleLoadConversations(w http.ResponseWriter, r *http.Request) {
	data, err := s.conversations.load()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleSaveConversations(w http.ResponseWriter, r *http.Request) {
	var payload []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "conversations must be a JSON array")
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.conversations.save(data); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
