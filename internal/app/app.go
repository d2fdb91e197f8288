// Package app is the terminal practice app shell: it owns the screen stack,
// the header with the learner's stars and streak, and the footer key hints.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/router"
	"github.com/abhisek/mathmentor/internal/screen"
	"github.com/abhisek/mathmentor/internal/screens/home"
	sess "github.com/abhisek/mathmentor/internal/session"
	"github.com/abhisek/mathmentor/internal/store"
	"github.com/abhisek/mathmentor/internal/ui/layout"
)

// Options holds the services the screens need. Session may be nil when no
// model provider is configured.
type Options struct {
	Session  *sess.Service
	Progress *progress.Service
	Events   store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	progress *progress.Service
	stars    int
	streak   int
	width    int
	height   int
}

// New creates an AppModel showing the home screen.
func New(opts Options) AppModel {
	return AppModel{
		router:   router.New(home.New(opts.Session, opts.Progress, opts.Events)),
		progress: opts.Progress,
	}
}

func (m AppModel) Init() tea.Cmd {
	prog := m.progress
	return func() tea.Msg {
		p, err := prog.Get(context.Background())
		if err != nil {
			return nil
		}
		return screen.ProgressMsg{Progress: p}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ProgressMsg:
		m.stars = msg.Progress.Stars
		m.streak = msg.Progress.Streak
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.BackHandler); ok && b.Back() {
				return m, nil
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.stars, m.streak, m.width)

	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the learner quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithContext(ctx)).Run()
	return err
}
