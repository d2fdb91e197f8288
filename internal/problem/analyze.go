// Package problem turns generated problem text into something a learner can
// work through: it runs the normalization, segmentation and extraction
// pipeline over the text and fetches problems, hints and solutions from an
// LLM.
package problem

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/abhisek/mathmentor/internal/geometry"
	"github.com/abhisek/mathmentor/internal/graphfn"
	"github.com/abhisek/mathmentor/internal/markup"
	"github.com/abhisek/mathmentor/internal/sections"
	"github.com/abhisek/mathmentor/internal/textnorm"
)

// Section names used as Block keys.
const (
	SectionStatement   = "problemStatement"
	SectionQuestion    = "question"
	SectionAnswerSpace = "answerSpace"
	SectionSolution    = "solution"
)

var sectionTitles = map[string]string{
	SectionStatement:   "Problem",
	SectionQuestion:    "Question",
	SectionAnswerSpace: "Answer space",
	SectionSolution:    "Solution",
}

// Title returns the display heading for a section name.
func Title(section string) string { return sectionTitles[section] }

// AnalyzeOptions controls Analyze.
type AnalyzeOptions struct {
	// Category enables category-specific extraction; functions are only
	// extracted for algebra.
	Category string

	// HideSolution drops the solution from Normalized and from Blocks.
	HideSolution bool
}

// Block is one non-empty section split into display segments.
type Block struct {
	Section  string           `json:"section"`
	Segments []markup.Segment `json:"segments"`
}

// Analysis is the full pipeline output for one piece of problem text.
type Analysis struct {
	ID         string                   `json:"id"`
	Category   string                   `json:"category,omitempty"`
	Normalized string                   `json:"normalized"`
	Sections   sections.ProblemSections `json:"sections"`
	Blocks     []Block                  `json:"blocks"`
	Scene      *geometry.Scene          `json:"scene,omitempty"`
	Functions  []string                 `json:"functions,omitempty"`
}

var geometryKeywordRe = regexp.MustCompile(`(?i)triangle|circle|angle|polygon|quadrilateral`)

// Analyze runs the whole pipeline over raw model output. It never fails.
func Analyze(raw string, opts AnalyzeOptions) Analysis {
	a := Analysis{
		ID:         uuid.NewString(),
		Category:   opts.Category,
		Normalized: textnorm.Normalize(raw, opts.HideSolution),
		Sections:   sections.Segment(textnorm.Normalize(raw, false)),
	}
	if opts.HideSolution {
		a.Sections.Solution = ""
	}

	for _, sec := range []struct{ name, text string }{
		{SectionStatement, a.Sections.ProblemStatement},
		{SectionQuestion, a.Sections.Question},
		{SectionAnswerSpace, a.Sections.AnswerSpace},
		{SectionSolution, a.Sections.Solution},
	} {
		if sec.text == "" {
			continue
		}
		segs := markup.Partition(textnorm.Normalize(sec.text, false))
		if len(segs) == 0 {
			continue
		}
		a.Blocks = append(a.Blocks, Block{Section: sec.name, Segments: segs})
	}

	// Equations and figures in a worked solution are not part of the problem.
	problemText := textnorm.StripSolution(raw)
	if geometryKeywordRe.MatchString(raw) {
		scene := geometry.Extract(problemText)
		a.Scene = &scene
	}
	if opts.Category == "algebra" {
		a.Functions = graphfn.Extract(problemText)
	}
	return a
}

// RenderedBlock is a Block after rendering.
type RenderedBlock struct {
	Section string            `json:"section"`
	Title   string            `json:"title"`
	Output  []markup.Rendered `json:"output"`
}

// Render typesets every block with r.
func (a Analysis) Render(r markup.Renderer) []RenderedBlock {
	out := make([]RenderedBlock, 0, len(a.Blocks))
	for _, b := range a.Blocks {
		out = append(out, RenderedBlock{
			Section: b.Section,
			Title:   Title(b.Section),
			Output:  markup.Render(b.Segments, r),
		})
	}
	return out
}
