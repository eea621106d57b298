// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server provides the techscope HTTP API: saved dashboards, on
// demand pipeline runs, the global pulse and run history.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pdiddy/techscope/internal/export"
	"github.com/pdiddy/techscope/internal/history"
	"github.com/pdiddy/techscope/pkg/types"
)

// DefaultRequestTimeout bounds a request when none is configured. Runs
// issue several rate-limited searches, so it is generous.
const DefaultRequestTimeout = 5 * time.Minute

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Runner runs the technology pipeline and never returns a nil result.
type Runner interface {
	RunOrFallback(ctx context.Context, tech string) (*types.TechResult, error)
}

// Server is the HTTP server for the techscope API.
type Server struct {
	runner    Runner
	artifacts export.Writer
	history   *history.Store
	config    types.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server. hist may be nil, in which case runs are not
// recorded and /api/runs reports the history as unavailable.
func NewServer(runner Runner, artifacts export.Writer, hist *history.Store, cfg types.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return &Server{
		runner:    runner,
		artifacts: artifacts,
		history:   hist,
		config:    cfg,
		logger:    logger,
	}
}

// Router returns the API handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/tech/{name}", s.handleGetTech)
		r.Post("/tech/{name}/run", s.handleRunTech)
		r.Get("/global", s.handleGlobal)
		r.Get("/runs", s.handleRuns)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting server", zap.String("addr", s.config.Addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
