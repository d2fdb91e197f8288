package setup

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/router"
	"github.com/abhisek/mathmentor/internal/screen"
)

type launched struct {
	screen.Screen
	params problem.Params
}

func newSetup() *SetupScreen {
	return New(func(p problem.Params) screen.Screen { return &launched{params: p} })
}

// press sends a key and feeds any resulting message back, returning it.
func press(t *testing.T, s *SetupScreen, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := s.Update(msg)
	if cmd == nil {
		return nil
	}
	out := cmd()
	if picked, ok := out.(pickedMsg); ok {
		_, cmd = s.Update(picked)
		if cmd == nil {
			return nil
		}
		return cmd()
	}
	return out
}

func TestSetup_FullFlow(t *testing.T) {
	s := newSetup()
	assert.Contains(t, s.View(80, 20), "Algebra")

	press(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	press(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "geometry", s.Params().Category)
	view := s.View(80, 20)
	assert.Contains(t, view, "Triangles")
	assert.Contains(t, view, "Geometry")

	press(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	press(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "triangles", s.Params().Subcategory)

	press(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	press(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	out := press(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})

	push, ok := out.(router.PushScreenMsg)
	require.True(t, ok, "expected push, got %T", out)
	want := problem.Params{Category: "geometry", Subcategory: "triangles", Difficulty: "hard"}
	assert.Equal(t, want, push.Screen.(*launched).params)
	assert.NoError(t, want.Validate())
}

func TestSetup_Back(t *testing.T) {
	s := newSetup()
	assert.False(t, s.Back(), "first stage lets the app pop")

	press(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	press(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	press(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, stageDifficulty, s.stage)

	assert.True(t, s.Back())
	assert.Equal(t, stageSubcategory, s.stage)
	assert.Equal(t, 1, s.menu.Selected, "previous choice stays highlighted")

	assert.True(t, s.Back())
	press(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	press(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "geometry", s.Params().Category)
	assert.Empty(t, s.Params().Subcategory, "changing category clears the topic")
}

func TestSetup_DifficultyShowsStars(t *testing.T) {
	s := newSetup()
	press(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	press(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(80, 20), "★★★")
}
