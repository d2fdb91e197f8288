// Package summary shows the learner's progress and per-category practice
// totals.
package summary

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/router"
	"github.com/abhisek/mathmentor/internal/screen"
	"github.com/abhisek/mathmentor/internal/session"
	"github.com/abhisek/mathmentor/internal/store"
	"github.com/abhisek/mathmentor/internal/ui/layout"
	"github.com/abhisek/mathmentor/internal/ui/theme"
)

type loadedMsg struct {
	Progress progress.Progress
	Summary  *session.Summary
	Err      error
}

type resetDoneMsg struct {
	Err error
}

// SummaryScreen displays progress. Events may be nil, in which case only the
// progress record is shown.
type SummaryScreen struct {
	prog   *progress.Service
	events store.EventRepo

	loaded     bool
	progress   progress.Progress
	summary    *session.Summary
	errMsg     string
	confirming bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(prog *progress.Service, events store.EventRepo) *SummaryScreen {
	return &SummaryScreen{prog: prog, events: events}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *SummaryScreen) Title() string {
	return "My Progress"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset everything"},
			{Key: "N", Description: "Keep progress"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Reset progress"},
		{Key: "Esc", Description: "Back"},
	}
}

// Back cancels a pending reset confirmation.
func (s *SummaryScreen) Back() bool {
	if s.confirming {
		s.confirming = false
		return true
	}
	return false
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.progress = msg.Progress
		s.summary = msg.Summary
		return s, nil

	case resetDoneMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, tea.Batch(
			s.load(),
			func() tea.Msg { return screen.ProgressMsg{} },
		)

	case tea.KeyMsg:
		key := msg.String()
		if s.confirming {
			switch key {
			case "y", "Y":
				s.confirming = false
				return s, s.reset()
			case "n", "N":
				s.confirming = false
			}
			return s, nil
		}
		switch key {
		case "r", "R":
			s.confirming = true
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) load() tea.Cmd {
	prog, events := s.prog, s.events
	return func() tea.Msg {
		ctx := context.Background()
		p, err := prog.Get(ctx)
		if err != nil {
			return loadedMsg{Err: err}
		}
		var records []store.PracticeEventRecord
		if events != nil {
			records, err = events.QueryPracticeEvents(ctx, store.QueryOpts{})
			if err != nil {
				return loadedMsg{Err: err}
			}
		}
		return loadedMsg{Progress: p, Summary: session.Summarize(records)}
	}
}

func (s *SummaryScreen) reset() tea.Cmd {
	prog := s.prog
	return func() tea.Msg {
		return resetDoneMsg{Err: prog.Reset(context.Background())}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	if s.errMsg != "" {
		return center(theme.Incorrect.Render(s.errMsg))
	}
	if !s.loaded {
		return center(theme.Hint.Render("Loading..."))
	}

	var b strings.Builder
	p := s.progress

	b.WriteString(center(theme.Title.Render("Your progress")))
	b.WriteString("\n\n")
	b.WriteString(center(
		theme.Stars.Render(fmt.Sprintf("★ %d stars", p.Stars)) + "     " +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%d day streak", p.Streak)) + "     " +
			theme.Body.Render(fmt.Sprintf("%d solved", len(p.CompletedProblems)))))
	b.WriteString("\n")
	if p.LastPracticeDate != "" {
		b.WriteString(center(theme.Subtitle.Render("Last practiced " + p.LastPracticeDate)))
		b.WriteString("\n")
	}

	if len(p.Achievements) > 0 {
		b.WriteString("\n")
		b.WriteString(center(theme.SectionHeading.Render("Achievements")))
		b.WriteString("\n")
		names := make([]string, len(p.Achievements))
		for i, a := range p.Achievements {
			names[i] = achievementName(a)
		}
		b.WriteString(center(theme.Body.Render(strings.Join(names, "  ·  "))))
		b.WriteString("\n")
	}

	if s.summary != nil && len(s.summary.Categories) > 0 {
		b.WriteString("\n")
		b.WriteString(center(theme.SectionHeading.Render("By category")))
		b.WriteString("\n")
		b.WriteString(center(renderTable(s.summary)))
		b.WriteString("\n")
	}

	if s.confirming {
		b.WriteString("\n")
		b.WriteString(center(theme.Incorrect.Render("Reset all stars, streak and achievements? (y/n)")))
	}
	return b.String()
}

func renderTable(sum *session.Summary) string {
	var b strings.Builder
	header := fmt.Sprintf("%-16s %6s %6s %8s %6s %9s", "Category", "Served", "Solved", "Revealed", "Hints", "Accuracy")
	b.WriteString(theme.Subtitle.Render(header))
	b.WriteString("\n")
	rows := append(slices.Clone(sum.Categories), sum.Total)
	for i, c := range rows {
		name := problem.TopicName(problem.Categories, c.Category)
		if i == len(rows)-1 {
			name = "Total"
		}
		line := fmt.Sprintf("%-16s %6d %6d %8d %6d %8.0f%%", name, c.Served, c.Solved, c.Revealed, c.Hints, c.Accuracy*100)
		style := theme.Body
		if i == len(rows)-1 {
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func achievementName(id string) string {
	var n int
	if _, err := fmt.Sscanf(id, "streak-%d", &n); err == nil {
		return fmt.Sprintf("%d-day streak", n)
	}
	if _, err := fmt.Sscanf(id, "stars-%d", &n); err == nil {
		return fmt.Sprintf("%d stars", n)
	}
	return id
}
