// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/techscope/internal/export"
	"github.com/pdiddy/techscope/internal/history"
	"github.com/pdiddy/techscope/pkg/types"
)

// techResponse is the body of the technology endpoints.
type techResponse struct {
	Status         string                `json:"status"`
	Technology     string                `json:"technology"`
	Data           *types.Dashboard      `json:"data"`
	KnowledgeGraph *types.KnowledgeGraph `json:"knowledge_graph"`
	Error          string                `json:"error,omitempty"`

	// LastRun is the most recent recorded run, when history is enabled.
	LastRun *history.RunRecord `json:"last_run,omitempty"`
}

// techName decodes a {name} path segment into the search query:
// underscores become spaces, whitespace is collapsed, and case is folded.
func techName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if dec, err := url.PathUnescape(raw); err == nil {
		raw = dec
	}
	raw = strings.ReplaceAll(raw, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// requireTechName decodes {name} and writes a 400 when it is empty, the
// literal "undefined", or not storable as an artifact slug.
func (s *Server) requireTechName(w http.ResponseWriter, r *http.Request) (string, bool) {
	tech := techName(r)
	if tech == "" || tech == "undefined" {
		s.respondError(w, http.StatusBadRequest, "invalid technology name")
		return "", false
	}
	if err := export.CheckTechnology(tech); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid technology name")
		return "", false
	}
	return tech, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetTech(w http.ResponseWriter, r *http.Request) {
	tech, ok := s.requireTechName(w, r)
	if !ok {
		return
	}
	slug := export.Slug(tech)

	d, err := s.artifacts.ReadDashboard(slug)
	if errors.Is(err, export.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "no saved analysis for "+slug+"; POST /api/tech/"+slug+"/run")
		return
	}
	if err != nil {
		s.logger.Error("reading dashboard", zap.String("technology", slug), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, techResponse{
		Status:         "success",
		Technology:     slug,
		Data:           d,
		KnowledgeGraph: s.readGraph(slug),
		LastRun:        s.lastRun(r, slug),
	})
}

func (s *Server) lastRun(r *http.Request, slug string) *history.RunRecord {
	if s.history == nil {
		return nil
	}
	run, err := s.history.Latest(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			s.logger.Warn("reading last run", zap.String("technology", slug), zap.Error(err))
		}
		return nil
	}
	return &run
}

func (s *Server) handleRunTech(w http.ResponseWriter, r *http.Request) {
	tech, ok := s.requireTechName(w, r)
	if !ok {
		return
	}
	slug := export.Slug(tech)
	s.logger.Info("run requested", zap.String("technology", tech))

	started := time.Now()
	res, runErr := s.runner.RunOrFallback(r.Context(), tech)
	elapsed := time.Since(started)

	d, err := s.artifacts.WriteResult(res)
	if err != nil {
		s.logger.Error("writing artifacts", zap.String("technology", slug), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "writing artifacts: "+err.Error())
		return
	}

	if s.history != nil {
		if _, err := s.history.Record(r.Context(), history.TechRun(slug, res, runErr, started, elapsed)); err != nil {
			s.logger.Warn("recording run", zap.String("technology", slug), zap.Error(err))
		}
	}

	resp := techResponse{
		Status:         "success",
		Technology:     slug,
		Data:           &d,
		KnowledgeGraph: &res.Graph,
	}
	if runErr != nil {
		resp.Status = "fallback"
		resp.Error = runErr.Error()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) readGraph(slug string) *types.KnowledgeGraph {
	g, err := s.artifacts.ReadGraph(slug)
	if err != nil {
		if !errors.Is(err, export.ErrNotFound) {
			s.logger.Warn("reading knowledge graph", zap.String("technology", slug), zap.Error(err))
		}
		return nil
	}
	return g
}

func (s *Server) handleGlobal(w http.ResponseWriter, r *http.Request) {
	p, err := s.artifacts.ReadPulse()
	if errors.Is(err, export.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "global pulse not available")
		return
	}
	if err != nil {
		s.logger.Error("reading global pulse", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.respondError(w, http.StatusServiceUnavailable, "run history is disabled")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	tech := strings.TrimSpace(r.URL.Query().Get("technology"))

	runs, err := s.history.List(r.Context(), tech, limit)
	if err != nil {
		s.logger.Error("listing runs", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
