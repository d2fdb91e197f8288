// Package setup picks what to practice: a category, one of its topics and a
// difficulty.
package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/router"
	"github.com/abhisek/mathmentor/internal/screen"
	"github.com/abhisek/mathmentor/internal/ui/components"
	"github.com/abhisek/mathmentor/internal/ui/layout"
	"github.com/abhisek/mathmentor/internal/ui/theme"
)

type stage int

const (
	stageCategory stage = iota
	stageSubcategory
	stageDifficulty
)

// pickedMsg is emitted by a menu item.
type pickedMsg struct {
	stage stage
	id    string
}

// SetupScreen walks through the three choices and then launches practice.
type SetupScreen struct {
	stage  stage
	params problem.Params
	menu   components.Menu
	launch func(problem.Params) screen.Screen
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.BackHandler = (*SetupScreen)(nil)

// New creates a SetupScreen. launch builds the screen shown once every
// choice is made.
func New(launch func(problem.Params) screen.Screen) *SetupScreen {
	s := &SetupScreen{launch: launch}
	s.menu = s.buildMenu()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Problem"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// Params returns the choices made so far.
func (s *SetupScreen) Params() problem.Params {
	return s.params
}

// Back steps to the previous choice. On the first choice it lets the app pop
// the screen.
func (s *SetupScreen) Back() bool {
	if s.stage == stageCategory {
		return false
	}
	s.stage--
	s.menu = s.buildMenu()
	s.menu.Selected = s.selectedIndex()
	return true
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(pickedMsg); ok && m.stage == s.stage {
		return s.pick(m.id)
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) pick(id string) (screen.Screen, tea.Cmd) {
	switch s.stage {
	case stageCategory:
		if s.params.Category != id {
			s.params.Subcategory = ""
		}
		s.params.Category = id
	case stageSubcategory:
		s.params.Subcategory = id
	case stageDifficulty:
		s.params.Difficulty = id
		next := s.launch(s.params)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	s.stage++
	s.menu = s.buildMenu()
	s.menu.Selected = s.selectedIndex()
	return s, nil
}

func (s *SetupScreen) topics() []problem.Topic {
	switch s.stage {
	case stageSubcategory:
		return problem.Subcategories[s.params.Category]
	case stageDifficulty:
		return problem.Difficulties
	default:
		return problem.Categories
	}
}

func (s *SetupScreen) selectedIndex() int {
	current := map[stage]string{
		stageCategory:    s.params.Category,
		stageSubcategory: s.params.Subcategory,
		stageDifficulty:  s.params.Difficulty,
	}[s.stage]
	for i, t := range s.topics() {
		if t.ID == current {
			return i
		}
	}
	return 0
}

func (s *SetupScreen) buildMenu() components.Menu {
	topics := s.topics()
	items := make([]components.MenuItem, len(topics))
	st := s.stage
	for i, t := range topics {
		id := t.ID
		item := components.MenuItem{
			Label:  t.Name,
			Action: func() tea.Cmd { return func() tea.Msg { return pickedMsg{stage: st, id: id} } },
		}
		if st == stageDifficulty {
			p := problem.Params{Difficulty: id}
			item.Detail = strings.Repeat("★", p.BaseStars())
		}
		items[i] = item
	}
	return components.NewMenu(items)
}

func (s *SetupScreen) View(width, height int) string {
	prompts := map[stage]string{
		stageCategory:    "What would you like to practice?",
		stageSubcategory: "Pick a topic",
		stageDifficulty:  "How hard?",
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(prompts[s.stage]))
	b.WriteString("\n")
	if crumbs := s.breadcrumb(); crumbs != "" {
		b.WriteString(theme.Subtitle.Render(crumbs))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.menu.View())

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(b.String())
}

func (s *SetupScreen) breadcrumb() string {
	var parts []string
	if s.stage > stageCategory {
		parts = append(parts, problem.TopicName(problem.Categories, s.params.Category))
	}
	if s.stage > stageSubcategory {
		parts = append(parts, problem.TopicName(problem.Subcategories[s.params.Category], s.params.Subcategory))
	}
	return strings.Join(parts, " › ")
}
