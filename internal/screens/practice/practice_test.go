package practice

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathmentor/internal/llm"
	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/router"
	"github.com/abhisek/mathmentor/internal/screen"
	sess "github.com/abhisek/mathmentor/internal/session"
	"github.com/abhisek/mathmentor/internal/store"
)

var linear = problem.Params{Category: "algebra", Subcategory: "linear", Difficulty: "easy"}

func newService(t *testing.T, responses ...llm.MockResponse) *sess.Service {
	t.Helper()
	st, err := store.Open(store.MemoryDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := problem.DefaultConfig()
	cfg.Structured = false
	svc := sess.NewService(
		problem.NewLLMSource(llm.NewMockProvider(responses...), cfg),
		progress.NewService(st.ProgressRepo()),
		st.EventRepo(),
	)
	svc.Now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func plain(s *PracticeScreen) string {
	return ansi.Strip(s.View(100, 40))
}

func hintKeys(s *PracticeScreen) []string {
	var keys []string
	for _, h := range s.KeyHints() {
		keys = append(keys, h.Description)
	}
	return keys
}

func TestPractice_SolveFlow(t *testing.T) {
	svc := newService(t,
		llm.MockText("Solve 3x + 5 = 20. Question: What is x?"),
		llm.MockText("Subtract 5 from both sides."),
		llm.MockText("true"),
		llm.MockText("true"),
	)
	s := New(svc, linear)

	require.NotNil(t, s.Init())
	assert.Equal(t, "Generating a problem", s.busy)
	assert.Contains(t, plain(s), "Generating a problem")

	s.Update(s.start()())
	require.NotNil(t, s.State())
	assert.Empty(t, s.busy)
	view := plain(s)
	assert.Contains(t, view, "Set up the equation")
	assert.Contains(t, view, "Algebra › Linear Equations")
	assert.Contains(t, hintKeys(s), "Check step")

	s.Update(s.hint()())
	require.Len(t, s.State().Hints, 1)
	assert.Contains(t, plain(s), "Hint 1:")

	_, cmd := s.Update(s.submit("3x + 5 = 20")())
	assert.Nil(t, cmd)
	assert.Equal(t, 1, s.State().Current)
	assert.Contains(t, plain(s), "Correct! On to the next step.")
	assert.Empty(t, s.input.Value())

	_, cmd = s.Update(s.submit("x = 5")())
	require.NotNil(t, cmd)
	msg, ok := cmd().(screen.ProgressMsg)
	require.True(t, ok)
	assert.Equal(t, 1, msg.Progress.Stars, "easy with one hint still earns one star")
	assert.Equal(t, sess.PhaseSolved, s.State().Phase)
	assert.Contains(t, plain(s), "You earned")
	assert.Contains(t, hintKeys(s), "New problem")
	assert.Contains(t, hintKeys(s), "Show solution")

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	require.NotNil(t, cmd)
	_, ok = cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)
}

func TestPractice_WrongAnswer(t *testing.T) {
	svc := newService(t, llm.MockText("What is 2 + 2?"), llm.MockText("false"))
	s := New(svc, linear)
	s.Update(s.start()())

	s.Update(s.submit("5")())
	assert.Zero(t, s.State().Current)
	assert.Contains(t, plain(s), "Not quite")
	assert.Contains(t, plain(s), "✗")
}

func TestPractice_Reveal(t *testing.T) {
	svc := newService(t, llm.MockText("What is 2 + 2?"), llm.MockText("Add the numbers.\n2 + 2 = 4"))
	s := New(svc, linear)
	s.Update(s.start()())

	s.Update(s.reveal()())
	assert.Equal(t, sess.PhaseRevealed, s.State().Phase)
	view := plain(s)
	assert.Contains(t, view, "Solution")
	assert.Contains(t, view, "Add the numbers.")
	assert.NotContains(t, hintKeys(s), "Show solution")
}

func TestPractice_GenerationFailure(t *testing.T) {
	svc := newService(t, llm.MockResponse{Err: errors.New("provider down")})
	s := New(svc, linear)
	s.Init()

	s.Update(s.start()())
	assert.Nil(t, s.State())
	assert.Contains(t, plain(s), "Could not generate a problem")
	assert.Contains(t, hintKeys(s), "Retry")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Generating a problem", s.busy)
}

func TestPractice_ConceptCard(t *testing.T) {
	svc := newService(t, llm.MockText("What is 2 + 2?"))
	s := New(svc, problem.Params{Category: "algebra", Subcategory: "quadratic", Difficulty: "easy"})
	s.Update(s.start()())

	view := plain(s)
	assert.Contains(t, view, "Quadratic Equations")
	assert.Contains(t, view, "x² + 5x + 6 = 0")
	assert.Contains(t, view, "Graph is a parabola")

	other := New(svc, problem.Params{Category: "geometry", Subcategory: "circles", Difficulty: "easy"})
	assert.NotContains(t, plain(other), "Examples:")
}

func TestPractice_KeysWhileBusy(t *testing.T) {
	svc := newService(t, llm.MockText("What is 2 + 2?"))
	s := New(svc, linear)
	s.Update(s.start()())

	s.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	assert.Equal(t, "4", s.input.Value())

	_, cmd := s.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Thinking of a hint", s.busy)

	s.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.Equal(t, "4", s.input.Value(), "input is frozen while a request runs")
}
