package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/store"
)

// ErrFinished is returned when acting on an attempt that is no longer being
// worked on.
var ErrFinished = errors.New("problem already finished")

// ErrEmptyAnswer is returned when a blank answer is submitted.
var ErrEmptyAnswer = errors.New("answer is empty")

// Result is the outcome of submitting a step answer.
type Result struct {
	Correct bool

	// Finished is set when the answer completed the last step.
	Finished bool

	// Stars awarded for finishing; zero otherwise.
	Stars int

	// Progress is the updated learner progress when Finished.
	Progress *progress.Progress
}

// Service drives practice attempts. Events and Progress may be nil.
type Service struct {
	source   problem.Source
	progress *progress.Service
	events   store.EventRepo

	// Now is the clock used for streak dates and attempt timing.
	Now func() time.Time
}

// NewService creates a Service.
func NewService(source problem.Source, prog *progress.Service, events store.EventRepo) *Service {
	return &Service{source: source, progress: prog, events: events, Now: time.Now}
}

// Start generates a problem for params.
func (s *Service) Start(ctx context.Context, params problem.Params) (*State, error) {
	text, err := s.source.Problem(ctx, params)
	if err != nil {
		return nil, err
	}
	st := NewState(params, text, s.Now())
	s.record(ctx, st, store.ActionServed, text, false, 0)
	return st, nil
}

// Hint fetches the next hint for the current step.
func (s *Service) Hint(ctx context.Context, st *State) (string, error) {
	step := st.CurrentStep()
	if step == nil {
		return "", ErrFinished
	}
	hint, err := s.source.Hint(ctx, st.Text, step.Instruction, len(st.Hints)+1)
	if err != nil {
		return "", err
	}
	st.Hints = append(st.Hints, hint)
	s.record(ctx, st, store.ActionHint, hint, false, 0)
	return hint, nil
}

// Submit checks answer against the current step. A correct answer advances
// to the next step; a correct answer to the last step finishes the problem
// and awards stars.
func (s *Service) Submit(ctx context.Context, st *State, answer string) (Result, error) {
	step := st.CurrentStep()
	if step == nil {
		return Result{}, ErrFinished
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Result{}, ErrEmptyAnswer
	}

	correct, err := s.source.ValidateStep(ctx, st.Text, step.Instruction, answer)
	if err != nil {
		return Result{}, err
	}
	step.Answer = answer
	step.Attempts++
	s.record(ctx, st, store.ActionStep, answer, correct, 0)

	res := Result{Correct: correct}
	if !correct {
		return res, nil
	}
	step.Done = true
	st.Current++
	if st.Current < len(st.Steps) {
		return res, nil
	}

	st.Phase = PhaseSolved
	res.Finished = true
	res.Stars = progress.CompletionStars(st.Params.BaseStars(), len(st.Hints), false)
	st.StarsEarned = res.Stars

	p, err := s.finish(ctx, st)
	if err != nil {
		return res, err
	}
	res.Progress = p
	s.record(ctx, st, store.ActionComplete, "", true, res.Stars)
	return res, nil
}

// Reveal fetches the full solution. Revealing ends the attempt without
// stars.
func (s *Service) Reveal(ctx context.Context, st *State) ([]string, error) {
	if st.Phase == PhaseRevealed {
		return st.Solution, nil
	}
	solution, err := s.source.FullSolution(ctx, st.Text)
	if err != nil {
		return nil, err
	}
	st.Solution = solution
	if st.Phase == PhaseWorking {
		st.Phase = PhaseRevealed
	}
	s.record(ctx, st, store.ActionReveal, strings.Join(solution, "\n"), false, 0)
	return solution, nil
}

func (s *Service) finish(ctx context.Context, st *State) (*progress.Progress, error) {
	if s.progress == nil {
		return nil, nil
	}
	if _, err := s.progress.AddStars(ctx, st.StarsEarned); err != nil {
		return nil, fmt.Errorf("award stars: %w", err)
	}
	if _, err := s.progress.UpdateStreak(ctx, s.Now()); err != nil {
		return nil, fmt.Errorf("update streak: %w", err)
	}
	p, err := s.progress.Complete(ctx, st.Analysis.ID)
	if err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	return &p, nil
}

func (s *Service) record(ctx context.Context, st *State, action, detail string, correct bool, stars int) {
	if s.events == nil {
		return
	}
	err := s.events.AppendPracticeEvent(ctx, store.PracticeEventData{
		ProblemID:   st.Analysis.ID,
		Action:      action,
		Category:    st.Params.Category,
		Subcategory: st.Params.Subcategory,
		Difficulty:  st.Params.Difficulty,
		Detail:      detail,
		Correct:     correct,
		Stars:       stars,
	})
	if err != nil {
		slog.Warn("failed to record practice event", "action", action, "error", err)
	}
}
