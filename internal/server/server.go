// Package server provides the HTTP API for the recipe generator.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"recipe-rag/internal/config"
	"recipe-rag/internal/domain"
	"recipe-rag/internal/service"
)

// RecipeAPI is the subset of the recipe service the HTTP API serves.
type RecipeAPI interface {
	Search(keywords []string, topN int) ([]domain.RankedMatch, error)
	Generate(ctx context.Context, req service.GenerateRequest) domain.Outcome
	Stats() service.Stats
}

// Server is the HTTP server for the recipe API.
type Server struct {
	recipes RecipeAPI
	config  *config.ServerConfig
	timeout time.Duration
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server. timeout bounds each request; zero means 60s.
func NewServer(recipes RecipeAPI, cfg *config.ServerConfig, timeout time.Duration, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Server{recipes: recipes, config: cfg, timeout: timeout, logger: logger}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/recipes", s.handleGenerate)
	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/stats", s.handleStats)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
