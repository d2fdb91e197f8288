// Package practice is the screen where a learner works through one problem
// step by step.
package practice

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/router"
	"github.com/abhisek/mathmentor/internal/screen"
	sess "github.com/abhisek/mathmentor/internal/session"
	"github.com/abhisek/mathmentor/internal/ui/components"
	"github.com/abhisek/mathmentor/internal/ui/layout"
	"github.com/abhisek/mathmentor/internal/ui/theme"
)

// requestTimeout bounds every call to the tutoring model.
const requestTimeout = 60 * time.Second

// PracticeScreen implements screen.Screen for one problem attempt.
type PracticeScreen struct {
	svc    *sess.Service
	params problem.Params
	state  *sess.State

	input   components.TextInput
	spinner spinner.Model

	// busy describes the request in flight; empty when idle.
	busy     string
	errMsg   string
	feedback string
	correct  bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen that generates a problem for params.
func New(svc *sess.Service, params problem.Params) *PracticeScreen {
	return &PracticeScreen{
		svc:    svc,
		params: params,
		input:  components.NewTextInput("Type your answer for this step...", 200),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.request("Generating a problem", s.start())
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	back := layout.KeyHint{Key: "Esc", Description: "Back"}
	switch {
	case s.busy != "":
		return []layout.KeyHint{back}
	case s.state == nil:
		return []layout.KeyHint{{Key: "R", Description: "Retry"}, back}
	case s.state.Phase == sess.PhaseWorking:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check step"},
			{Key: "Ctrl+T", Description: "Hint"},
			{Key: "Ctrl+R", Description: "Show solution"},
			back,
		}
	}
	hints := []layout.KeyHint{{Key: "N", Description: "New problem"}}
	if s.state.Solution == nil {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Show solution"})
	}
	return append(hints, back)
}

// State returns the attempt being shown, or nil while the first problem is
// loading.
func (s *PracticeScreen) State() *sess.State {
	return s.state
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.busy == "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case problemReadyMsg:
		s.busy = ""
		if msg.Err != nil {
			s.errMsg = "Could not generate a problem: " + msg.Err.Error()
			return s, nil
		}
		s.state = msg.State
		s.errMsg = ""
		s.input.Reset()
		return s, s.input.Init()

	case hintReadyMsg:
		return s.handleHint(msg)

	case answerCheckedMsg:
		return s.handleAnswer(msg)

	case solutionReadyMsg:
		s.busy = ""
		if msg.Err != nil {
			s.errMsg = "Could not load the solution: " + msg.Err.Error()
			return s, nil
		}
		s.state = msg.State
		s.errMsg = ""
		s.feedback = ""
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.working() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) working() bool {
	return s.busy == "" && s.state != nil && s.state.Phase == sess.PhaseWorking
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy != "" {
		return s, nil
	}
	key := msg.String()

	if s.state == nil {
		if key == "r" || key == "R" {
			s.errMsg = ""
			return s, s.request("Generating a problem", s.start())
		}
		return s, nil
	}

	if s.state.Phase != sess.PhaseWorking {
		switch key {
		case "n", "N", "enter":
			next := New(s.svc, s.params)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "s", "S":
			if s.state.Solution == nil {
				return s, s.request("Working out the solution", s.reveal())
			}
		}
		return s, nil
	}

	switch key {
	case "enter":
		answer := s.input.Value()
		if strings.TrimSpace(answer) == "" {
			return s, nil
		}
		return s, s.request("Checking your answer", s.submit(answer))
	case "ctrl+t":
		return s, s.request("Thinking of a hint", s.hint())
	case "ctrl+r":
		return s, s.request("Working out the solution", s.reveal())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) handleHint(msg hintReadyMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	if msg.Err != nil {
		s.errMsg = "Could not get a hint: " + msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.errMsg = ""
	return s, nil
}

func (s *PracticeScreen) handleAnswer(msg answerCheckedMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	if msg.Err != nil {
		if errors.Is(msg.Err, sess.ErrEmptyAnswer) {
			return s, nil
		}
		s.errMsg = "Could not check your answer: " + msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.errMsg = ""
	s.correct = msg.Result.Correct
	s.input.Mark(msg.Result.Correct)

	switch {
	case msg.Result.Finished:
		s.feedback = "Solved!"
	case msg.Result.Correct:
		s.feedback = "Correct! On to the next step."
		s.input.Reset()
	default:
		s.feedback = "Not quite. Try again or ask for a hint."
	}

	if msg.Result.Progress != nil {
		p := *msg.Result.Progress
		return s, func() tea.Msg { return screen.ProgressMsg{Progress: p} }
	}
	return s, nil
}

// request marks the screen busy and runs cmd alongside the spinner.
func (s *PracticeScreen) request(label string, cmd tea.Cmd) tea.Cmd {
	s.busy = label
	return tea.Batch(s.spinner.Tick, cmd)
}

func (s *PracticeScreen) start() tea.Cmd {
	svc, params := s.svc, s.params
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		st, err := svc.Start(ctx, params)
		return problemReadyMsg{State: st, Err: err}
	}
}

// The commands below work on a clone so the displayed state is never
// mutated off the update loop.

func (s *PracticeScreen) hint() tea.Cmd {
	svc, work := s.svc, s.state.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := svc.Hint(ctx, work)
		return hintReadyMsg{State: work, Err: err}
	}
}

func (s *PracticeScreen) submit(answer string) tea.Cmd {
	svc, work := s.svc, s.state.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := svc.Submit(ctx, work, answer)
		return answerCheckedMsg{State: work, Result: res, Err: err}
	}
}

func (s *PracticeScreen) reveal() tea.Cmd {
	svc, work := s.svc, s.state.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := svc.Reveal(ctx, work)
		return solutionReadyMsg{State: work, Err: err}
	}
}
