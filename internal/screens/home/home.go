// Package home is the start screen.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/router"
	"github.com/abhisek/mathmentor/internal/screen"
	"github.com/abhisek/mathmentor/internal/screens/notice"
	"github.com/abhisek/mathmentor/internal/screens/practice"
	"github.com/abhisek/mathmentor/internal/screens/setup"
	"github.com/abhisek/mathmentor/internal/screens/summary"
	sess "github.com/abhisek/mathmentor/internal/session"
	"github.com/abhisek/mathmentor/internal/store"
	"github.com/abhisek/mathmentor/internal/ui/components"
	"github.com/abhisek/mathmentor/internal/ui/layout"
	"github.com/abhisek/mathmentor/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. A nil svc means no model is configured; practice
// then explains how to set one up.
func New(svc *sess.Service, prog *progress.Service, events store.EventRepo) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Practice", Detail: "pick a topic and solve a problem", Action: func() tea.Cmd {
			var next screen.Screen
			if svc == nil {
				next = notice.New("Practice",
					"No AI provider is configured.\nSet MATHMENTOR_OPENROUTER_API_KEY (or another provider key) and restart.")
			} else {
				next = setup.New(func(p problem.Params) screen.Screen { return practice.New(svc, p) })
			}
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: "My Progress", Detail: "stars, streak and accuracy", Action: func() tea.Cmd {
			next := summary.New(prog, events)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		theme.Subtitle.Render("Step-by-step math practice with an AI tutor"),
		theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")),
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, interleave(sections, "")...))
}

func interleave(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
