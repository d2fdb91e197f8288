// Package session runs a practice attempt: it serves a problem, walks the
// learner through its steps, hands out hints and solutions, and awards stars
// when the problem is finished.
package session

import (
	"slices"
	"time"

	"github.com/abhisek/mathmentor/internal/problem"
)

// Phase is where an attempt currently stands.
type Phase int

const (
	PhaseWorking  Phase = iota // Answering steps
	PhaseSolved                // Every step answered correctly
	PhaseRevealed              // Full solution shown
)

func (p Phase) String() string {
	switch p {
	case PhaseSolved:
		return "solved"
	case PhaseRevealed:
		return "revealed"
	default:
		return "working"
	}
}

// Step is one instruction of the step plan and the learner's progress on it.
type Step struct {
	Instruction string
	Answer      string // last submitted answer
	Attempts    int
	Done        bool
}

// State is one problem being worked on.
type State struct {
	Params problem.Params

	// Text is the problem text as generated.
	Text string

	// Analysis is the pipeline output with the solution hidden.
	Analysis problem.Analysis

	Steps   []Step
	Current int // index into Steps

	// Hints holds every hint shown, in order. Its length is the hint level
	// used so far.
	Hints []string

	// Solution is set once revealed.
	Solution []string

	Phase       Phase
	StarsEarned int
	StartTime   time.Time
}

// NewState creates the state for freshly generated problem text.
func NewState(params problem.Params, text string, now time.Time) *State {
	plan := problem.Steps(params)
	steps := make([]Step, len(plan))
	for i, instr := range plan {
		steps[i] = Step{Instruction: instr}
	}
	return &State{
		Params: params,
		Text:   text,
		Analysis: problem.Analyze(text, problem.AnalyzeOptions{
			Category:     params.Category,
			HideSolution: true,
		}),
		Steps:     steps,
		StartTime: now,
	}
}

// CurrentStep returns the step being worked on, or nil once the attempt is
// over.
func (s *State) CurrentStep() *Step {
	if s.Phase != PhaseWorking || s.Current >= len(s.Steps) {
		return nil
	}
	return &s.Steps[s.Current]
}

// Completed returns how many steps are done.
func (s *State) Completed() int {
	n := 0
	for _, st := range s.Steps {
		if st.Done {
			n++
		}
	}
	return n
}

// Fraction returns the share of steps done, in [0, 1].
func (s *State) Fraction() float64 {
	if len(s.Steps) == 0 {
		return 0
	}
	return float64(s.Completed()) / float64(len(s.Steps))
}

// Clone returns a copy that shares no mutable slices with s, so a request
// can work on it while s is still being displayed.
func (s *State) Clone() *State {
	c := *s
	c.Steps = slices.Clone(s.Steps)
	c.Hints = slices.Clone(s.Hints)
	c.Solution = slices.Clone(s.Solution)
	return &c
}
