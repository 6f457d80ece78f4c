// Package server provides the HTTP API for kotae.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/hyperjump/kotae/internal/composer"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/eval"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// Server is the HTTP server for the kotae API.
type Server struct {
	composer      *composer.Composer
	evalLogger    *eval.Logger
	store         store.Store
	index         vector.Index
	cfg           *config.Config
	logger        *zap.Logger
	validate      *validator.Validate
	conversations *conversationStore
	server        *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	cmp *composer.Composer,
	evalLogger *eval.Logger,
	st store.Store,
	index vector.Index,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		composer:      cmp,
		evalLogger:    evalLogger,
		store:         st,
		index:         index,
		cfg:           cfg,
		logger:        logger,
		validate:      validator.New(),
		conversations: newConversationStore(cfg.Server.ConversationsPath),
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Minute))

	r.Post("/api/v1/query", s.handleQuery)
	r.Post("/api/v1/evaluations", s.handleLogEvaluation)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/api/v1/conversations", s.handleLoadConversations)
	r.Put("/api/v1/conversations", s.handleSaveConversations)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
