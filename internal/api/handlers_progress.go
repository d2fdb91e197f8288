package api

import (
	"net/http"
	"time"

	"github.com/abhisek/mathmentor/internal/progress"
)

type starsRequest struct {
	Stars int `json:"stars"`
}

type completeRequest struct {
	ProblemID string `json:"problemId"`
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.progress.Get(r.Context())
	s.respondProgress(w, r, p, err)
}

func (s *Server) handlePatchProgress(w http.ResponseWriter, r *http.Request) {
	var patch progress.Patch
	if !decode(w, r, &patch) {
		return
	}
	p, err := s.progress.Update(r.Context(), patch)
	s.respondProgress(w, r, p, err)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := s.progress.Reset(r.Context()); err != nil {
		s.log.Error("reset progress", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddStars(w http.ResponseWriter, r *http.Request) {
	var req starsRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Stars <= 0 {
		jsonError(w, "stars must be positive", http.StatusBadRequest)
		return
	}
	p, err := s.progress.AddStars(r.Context(), req.Stars)
	s.respondProgress(w, r, p, err)
}

func (s *Server) handleUpdateStreak(w http.ResponseWriter, r *http.Request) {
	p, err := s.progress.UpdateStreak(r.Context(), time.Now())
	s.respondProgress(w, r, p, err)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ProblemID == "" {
		jsonError(w, "problemId is required", http.StatusBadRequest)
		return
	}
	p, err := s.progress.Complete(r.Context(), req.ProblemID)
	s.respondProgress(w, r, p, err)
}

func (s *Server) respondProgress(w http.ResponseWriter, r *http.Request, p progress.Progress, err error) {
	if err != nil {
		s.log.Error("progress request failed", "path", r.URL.Path, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
