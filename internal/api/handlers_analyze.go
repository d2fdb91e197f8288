package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/abhisek/mathmentor/internal/markup"
	"github.com/abhisek/mathmentor/internal/problem"
)

type analyzeRequest struct {
	Text         string `json:"text"`
	Category     string `json:"category"`
	HideSolution bool   `json:"hideSolution"`
}

type analyzeResponse struct {
	problem.Analysis
	Rendered []problem.RenderedBlock `json:"rendered"`

	// SolutionHTML is the solution rendered as Markdown; models tend to
	// format worked steps as lists.
	SolutionHTML string `json:"solutionHtml,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	a := problem.Analyze(req.Text, problem.AnalyzeOptions{
		Category:     req.Category,
		HideSolution: req.HideSolution,
	})
	resp := analyzeResponse{
		Analysis: a,
		Rendered: a.Render(markup.HTMLRenderer{}),
	}
	if !req.HideSolution && a.Sections.Solution != "" {
		html, err := s.markdown(a.Sections.Solution)
		if err != nil {
			s.log.Warn("render solution markdown", "error", err)
		} else {
			resp.SolutionHTML = html
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// markdown converts text to HTML. Raw HTML in the input is dropped.
func (s *Server) markdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
