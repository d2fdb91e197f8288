package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/router"
	"github.com/abhisek/mathmentor/internal/screens/notice"
	"github.com/abhisek/mathmentor/internal/screens/summary"
	"github.com/abhisek/mathmentor/internal/store"
)

func newHome(t *testing.T) *HomeScreen {
	t.Helper()
	st, err := store.Open(store.MemoryDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(nil, progress.NewService(st.ProgressRepo()), st.EventRepo())
}

func TestHome_View(t *testing.T) {
	h := newHome(t)
	view := ansi.Strip(h.View(100, 30))
	assert.Contains(t, view, "Practice")
	assert.Contains(t, view, "My Progress")
	assert.Contains(t, view, "Quit")
}

func TestHome_PracticeWithoutProvider(t *testing.T) {
	h := newHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &notice.NoticeScreen{}, push.Screen)
}

func TestHome_Progress(t *testing.T) {
	h := newHome(t)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push := cmd().(router.PushScreenMsg)
	assert.IsType(t, &summary.SummaryScreen{}, push.Screen)
}

func TestRenderBanner(t *testing.T) {
	assert.Contains(t, RenderBanner(30), "M A T H M E N T O R")
	assert.NotContains(t, RenderBanner(120), "M A T H M E N T O R")
}
