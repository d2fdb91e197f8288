// Package screen defines the contract between the app shell and the screens
// it stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/ui/layout"
)

// Screen is one page of the terminal app.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ProgressMsg carries fresh learner progress to the header. Screens emit it
// after anything that changes stars or streak.
type ProgressMsg struct {
	Progress progress.Progress
}

// BackHandler is implemented by screens with their own inner navigation.
// Back reports whether the screen consumed the back key; when it did not,
// the app pops the screen.
type BackHandler interface {
	Back() bool
}
