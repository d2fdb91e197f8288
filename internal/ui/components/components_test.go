package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg string

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "a"},
		{Label: "off", Disabled: true},
		{Label: "b", Action: func() tea.Cmd { return func() tea.Msg { return pickedMsg("b") } }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected, "stays on last item")

	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg("b"), cmd())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)
}

func TestMenu_View(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Algebra", Detail: "equations"}, {Label: "Geometry"}})
	view := m.View()
	assert.Contains(t, view, "▸ Algebra")
	assert.Contains(t, view, "equations")
	assert.Contains(t, view, "Geometry")
}

func TestProgressBar(t *testing.T) {
	assert.Zero(t, ProgressBar{}.Fraction())
	assert.Equal(t, 0.5, ProgressBar{Done: 1, Total: 2}.Fraction())
	assert.Equal(t, 1.0, ProgressBar{Done: 5, Total: 2}.Fraction())

	view := ProgressBar{Label: "Steps", Done: 1, Total: 3, Width: 40}.View()
	assert.Contains(t, view, "Steps")
	assert.Contains(t, view, "1/3")
}

func TestTextInput_MarkClearedOnEdit(t *testing.T) {
	ti := NewTextInput("answer", 0)
	ti.Model.SetValue("x = 4")
	ti.Mark(true)
	assert.Contains(t, ti.View(), "✓")

	ti, _ = ti.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.NotContains(t, ti.View(), "✓")
	assert.Equal(t, "x = 42", ti.Value())

	ti.Reset()
	assert.Empty(t, ti.Value())
}
