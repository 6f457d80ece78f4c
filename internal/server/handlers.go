package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retriever"
	"go.uber.org/zap"
)

type queryRequest struct {
	Question string `json:"question" validate:"required"`
}

type queryResponse struct {
	Answer  string         `json:"answer"`
	Sources []models.Chunk `json:"sources"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := s.validateStruct(&req); errs != nil {
		s.respondValidationError(w, errs)
		return
	}
	s.logger.Debug("query request", zap.String("question", req.Question))

	answer, err := s.composer.Ask(r.Context(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, retriever.ErrIndexUnavailable):
			s.respondError(w, http.StatusServiceUnavailable, "vector index not built; run ingest first")
		case errors.Is(err, llm.ErrGenerationFailed):
			s.logger.Error("generation failed", zap.Error(err))
			s.respondError(w, http.StatusBadGateway, "answer generation failed; please try again")
		default:
			s.logger.Error("query failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusOK, queryResponse{Answer: answer.Text, Sources: answer.Sources})
}

func (s *Server) handleLogEvaluation(w http.ResponseWriter, r *http.Request) {
	var input models.EvaluationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The boundary owns payload validation; the logger trusts its caller.
	if errs := s.validateStruct(&input); errs != nil {
		s.respondValidationError(w, errs)
		return
	}
	record, err := s.evalLogger.Log(input)
	if err != nil {
		s.logger.Error("evaluation log failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, record)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docCount, err := s.store.CountDocuments(ctx)
	if err != nil {
		s.logger.Error("status: count documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	chunkCount, err := s.store.CountChunks(ctx)
	if err != nil {
		s.logger.Error("status: count chunks failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents":         docCount,
		"chunks":            chunkCount,
		"vector_index_size": s.index.Size(),
		"config": map[string]interface{}{
			"index_dir":            s.cfg.Index.Dir,
			"embedding_model":      s.cfg.Embedding.Model,
			"embedding_dimensions": s.cfg.Embedding.Dimensions,
			"llm_model":            s.cfg.LLM.Model,
			"top_k":                s.cfg.Retrieval.TopK,
			"chunk_size":           s.cfg.Corpus.ChunkSize,
			"chunk_overlap":        s.cfg.Corpus.ChunkOverlap,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validateStruct returns a field -> message map, or nil when valid.
func (s *Server) validateStruct(v interface{}) map[string]string {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fmt.Sprintf("failed on '%s' tag", fe.Tag())
	}
	return out
}

func (s *Server) respondValidationError(w http.ResponseWriter, errs map[string]string) {
	s.respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": errs})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
