package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/abhisek/mathmentor/internal/problem"
)

type mathRequest struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params"`
}

type hintParams struct {
	Problem     string `json:"problem"`
	CurrentStep string `json:"currentStep"`
	HintLevel   int    `json:"hintLevel"`
}

type validateParams struct {
	Problem    string `json:"problem"`
	Step       string `json:"step"`
	UserAnswer string `json:"userAnswer"`
}

type solutionParams struct {
	Problem string `json:"problem"`
}

// handleMath dispatches the four tutoring calls. Every success responds
// with {"result": ...}: problem text, hint text, a boolean or solution
// lines.
func (s *Server) handleMath(w http.ResponseWriter, r *http.Request) {
	var req mathRequest
	if !decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	var (
		result any
		err    error
	)
	switch req.Type {
	case "generateProblem":
		var p problem.Params
		if !decodeParams(w, req.Params, &p) {
			return
		}
		result, err = s.source.Problem(ctx, p)
	case "generateHint":
		var p hintParams
		if !decodeParams(w, req.Params, &p) || !requireProblem(w, p.Problem) {
			return
		}
		result, err = s.source.Hint(ctx, p.Problem, p.CurrentStep, p.HintLevel)
	case "validateStep":
		var p validateParams
		if !decodeParams(w, req.Params, &p) || !requireProblem(w, p.Problem) {
			return
		}
		result, err = s.source.ValidateStep(ctx, p.Problem, p.Step, p.UserAnswer)
	case "generateFullSolution":
		var p solutionParams
		if !decodeParams(w, req.Params, &p) || !requireProblem(w, p.Problem) {
			return
		}
		result, err = s.source.FullSolution(ctx, p.Problem)
	default:
		jsonError(w, "Invalid request type", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func decodeParams(w http.ResponseWriter, raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		jsonError(w, "params are required", http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		jsonError(w, "invalid params: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func requireProblem(w http.ResponseWriter, text string) bool {
	if text == "" {
		jsonError(w, "problem is required", http.StatusBadRequest)
		return false
	}
	return true
}
