// Package api serves problem generation, tutoring, analysis and progress
// over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"

	"github.com/abhisek/mathmentor/internal/config"
	"github.com/abhisek/mathmentor/internal/llm"
	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/store"
)

// Server is the HTTP API server for mathmentor.
type Server struct {
	router   chi.Router
	source   problem.Source
	progress *progress.Service
	events   store.EventRepo
	md       goldmark.Markdown
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. events may be nil, in
// which case the LLM stats endpoint reports unavailable.
func NewServer(source problem.Source, prog *progress.Service, events store.EventRepo, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		source:   source,
		progress: prog,
		events:   events,
		md:       goldmark.New(),
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}
		r.Use(limitBody(s.cfg.MaxBodyBytes))

		r.Post("/api/math", s.handleMath)
		r.Post("/api/analyze", s.handleAnalyze)
		r.Get("/api/topics", s.handleTopics)

		r.Get("/api/progress", s.handleGetProgress)
		r.Patch("/api/progress", s.handlePatchProgress)
		r.Delete("/api/progress", s.handleResetProgress)
		r.Post("/api/progress/stars", s.handleAddStars)
		r.Post("/api/progress/streak", s.handleUpdateStreak)
		r.Post("/api/progress/complete", s.handleComplete)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories":    problem.Categories,
		"subcategories": problem.Subcategories,
		"difficulties":  problem.Difficulties,
		"concepts":      problem.Concepts,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// upstreamError maps a failed problem or tutoring call to a response:
// bad input is the caller's fault, a misbehaving model is a bad gateway.
func (s *Server) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr        *problem.ValidationError
		rateLimit   *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		unavailable *llm.ErrProviderUnavailable
		truncated   *llm.ErrMaxTokensExceeded
		rejected    *llm.ErrRequestRejected
	)
	switch {
	case errors.Is(err, problem.ErrInvalidCategory),
		errors.Is(err, problem.ErrInvalidDifficulty),
		errors.Is(err, problem.ErrMissingSubcategory):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &verr), errors.As(err, &rateLimit), errors.As(err, &invalid),
		errors.As(err, &unavailable), errors.As(err, &truncated), errors.As(err, &rejected),
		errors.Is(err, context.DeadlineExceeded):
		s.log.Warn("upstream failure", "path", r.URL.Path, "error", err)
		jsonError(w, "AI service error: "+err.Error(), http.StatusBadGateway)
	default:
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}
