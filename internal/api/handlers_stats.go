package api

import (
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	byPurpose, err := s.events.LLMUsageByPurpose(r.Context())
	if err != nil {
		s.log.Error("llm usage by purpose", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	byModel, err := s.events.LLMUsageByModel(r.Context())
	if err != nil {
		s.log.Error("llm usage by model", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"byPurpose": byPurpose,
		"byModel":   byModel,
	})
}
