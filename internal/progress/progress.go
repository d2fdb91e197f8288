// Package progress tracks the learner's stars, daily streak, completed
// problems and achievements.
package progress

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/mathmentor/internal/store"
)

// dateLayout is the calendar-day format of LastPracticeDate.
const dateLayout = "2006-01-02"

// Progress is the learner's accumulated progress.
type Progress struct {
	Stars             int      `json:"stars"`
	Streak            int      `json:"streak"`
	LastPracticeDate  string   `json:"lastPracticeDate"`
	CompletedProblems []string `json:"completedProblems"`
	Achievements      []string `json:"achievements"`
}

// Patch holds the fields to overwrite in Update. Nil fields are left alone.
type Patch struct {
	Stars             *int      `json:"stars,omitempty"`
	Streak            *int      `json:"streak,omitempty"`
	LastPracticeDate  *string   `json:"lastPracticeDate,omitempty"`
	CompletedProblems *[]string `json:"completedProblems,omitempty"`
	Achievements      *[]string `json:"achievements,omitempty"`
}

// Service reads and updates progress. Every mutation is a
// load-modify-save cycle serialized by a mutex.
type Service struct {
	repo store.ProgressRepo

	mu sync.Mutex
}

// NewService creates a Service backed by repo.
func NewService(repo store.ProgressRepo) *Service {
	return &Service{repo: repo}
}

// Get returns the current progress. Before anything has been saved it
// returns zero progress.
func (s *Service) Get(ctx context.Context) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Update merges patch into the stored progress.
func (s *Service) Update(ctx context.Context, patch Patch) (Progress, error) {
	return s.mutate(ctx, func(p *Progress) {
		if patch.Stars != nil {
			p.Stars = *patch.Stars
		}
		if patch.Streak != nil {
			p.Streak = *patch.Streak
		}
		if patch.LastPracticeDate != nil {
			p.LastPracticeDate = *patch.LastPracticeDate
		}
		if patch.CompletedProblems != nil {
			p.CompletedProblems = slices.Clone(*patch.CompletedProblems)
		}
		if patch.Achievements != nil {
			p.Achievements = slices.Clone(*patch.Achievements)
		}
	})
}

// AddStars adds n stars and awards any star milestones reached.
func (s *Service) AddStars(ctx context.Context, n int) (Progress, error) {
	return s.mutate(ctx, func(p *Progress) {
		p.Stars += n
		for _, m := range StarMilestones {
			if p.Stars >= m {
				award(p, starAchievement(m))
			}
		}
	})
}

// UpdateStreak records practice on the UTC calendar day of now. Practicing
// again on the same day changes nothing, practicing the day after the last
// practice extends the streak and any longer gap restarts it at 1.
func (s *Service) UpdateStreak(ctx context.Context, now time.Time) (Progress, error) {
	return s.mutate(ctx, func(p *Progress) {
		today := now.UTC().Format(dateLayout)
		if p.LastPracticeDate == today {
			return
		}
		yesterday := now.UTC().AddDate(0, 0, -1).Format(dateLayout)
		if p.LastPracticeDate == yesterday {
			p.Streak++
		} else {
			p.Streak = 1
		}
		p.LastPracticeDate = today
		for m := BaseStreakMilestone; m <= p.Streak; m = NextStreakMilestone(m) {
			award(p, streakAchievement(m))
		}
	})
}

// Complete marks a problem as completed. Completing the same problem twice
// is a no-op.
func (s *Service) Complete(ctx context.Context, problemID string) (Progress, error) {
	return s.mutate(ctx, func(p *Progress) {
		if !slices.Contains(p.CompletedProblems, problemID) {
			p.CompletedProblems = append(p.CompletedProblems, problemID)
		}
	})
}

// Reset discards all progress.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (s *Service) mutate(ctx context.Context, fn func(*Progress)) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx)
	if err != nil {
		return Progress{}, err
	}
	fn(&p)

	err = s.repo.Save(ctx, store.ProgressData{
		Stars:             p.Stars,
		Streak:            p.Streak,
		LastPracticeDate:  p.LastPracticeDate,
		CompletedProblems: p.CompletedProblems,
		Achievements:      p.Achievements,
		UpdatedAt:         time.Now(),
	})
	if err != nil {
		return Progress{}, fmt.Errorf("save progress: %w", err)
	}
	return p, nil
}

func (s *Service) load(ctx context.Context) (Progress, error) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return Progress{}, fmt.Errorf("load progress: %w", err)
	}
	p := Progress{CompletedProblems: []string{}, Achievements: []string{}}
	if data == nil {
		return p, nil
	}
	p.Stars = data.Stars
	p.Streak = data.Streak
	p.LastPracticeDate = data.LastPracticeDate
	if data.CompletedProblems != nil {
		p.CompletedProblems = data.CompletedProblems
	}
	if data.Achievements != nil {
		p.Achievements = data.Achievements
	}
	return p, nil
}
