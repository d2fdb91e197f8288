package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathmentor/internal/textnorm"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{"empty", "", nil},
		{"plain is math", "x^2 + 1", []Segment{{ModeMath, "x^2 + 1"}}},
		{
			"literal marker",
			`Find x <html><div class="section-label primary">Question:</div></html> What is x?`,
			[]Segment{
				{ModeMath, "Find x"},
				{ModeLiteral, `<div class="section-label primary">Question:</div>`},
				{ModeMath, "What is x?"},
			},
		},
		{
			"explicit math",
			"Area <math>\\pi r^2</math> units",
			[]Segment{{ModeMath, "Area"}, {ModeMath, "\\pi r^2"}, {ModeMath, "units"}},
		},
		{"blank spans dropped", "<html> </html>  <html></html>", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Partition(tt.in))
		})
	}
}

func TestPartition_NormalizedText(t *testing.T) {
	norm := textnorm.Normalize("Find the area. Question: What is it? Solution: multiply. Answer: 6", false)
	segs := Partition(norm)

	var literals int
	for _, s := range segs {
		assert.NotEmpty(t, s.Payload)
		assert.NotContains(t, s.Payload, "<html>")
		if s.Mode == ModeLiteral {
			literals++
		}
	}
	assert.Equal(t, 3, literals)
}

type failingRenderer struct{ TerminalRenderer }

func (failingRenderer) RenderMath(string) (string, error) { return "", errors.New("nope") }

func TestRender_FallsBackToText(t *testing.T) {
	segs := []Segment{{ModeMath, "x"}, {ModeLiteral, "<b>L</b>"}}
	out := Render(segs, failingRenderer{})

	require.Len(t, out, 2)
	assert.Equal(t, ModeText, out[0].Mode)
	assert.Contains(t, out[0].Output, "x")
	assert.Equal(t, ModeLiteral, out[1].Mode)
}

func TestRender_NeverDrops(t *testing.T) {
	segs := Partition(`\begin{align} x \end{align} and {unbalanced <html><div>Q</div></html>`)
	out := Render(segs, HTMLRenderer{})
	assert.Len(t, out, len(segs))
	for _, r := range out {
		assert.NotEmpty(t, r.Output)
	}
}

func TestToUnicode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\angle ABC = 60^{\circ}`, "∠ ABC = 60°"},
		{`\triangle XYZ`, "△ XYZ"},
		{`x^2 + y^{10}`, "x² + y¹⁰"},
		{`\frac{1}{2} \cdot 6`, "1/2 · 6"},
		{`\frac{a+b}{2}`, "(a+b)/2"},
		{`\sqrt{2} \times 3`, "√2 × 3"},
		{`\frac{\sqrt{3}}{2}`, "(√3)/2"},
		{`a_1 + a_{n}`, "a₁ + a_n"},
		{`\text{cm}^2`, "cm²"},
		{`x \leq 5`, "x ≤ 5"},
		{"plain words", "plain words"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToUnicode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToUnicode_Errors(t *testing.T) {
	_, err := ToUnicode(`\frac{1}{2`)
	assert.ErrorIs(t, err, ErrUnbalanced)

	_, err = ToUnicode(`a } b {`)
	assert.ErrorIs(t, err, ErrUnbalanced)

	_, err = ToUnicode(`\begin{matrix} 1 \end{matrix}`)
	var unk *UnknownCommandError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "begin", unk.Command)
}

func TestHTMLRenderer(t *testing.T) {
	r := HTMLRenderer{}

	lit := r.RenderLiteral(`<div class="section-label success" onclick="x()">Answer:</div><script>alert(1)</script>`)
	assert.Equal(t, `<div class="section-label success">Answer:</div>alert(1)`, lit)

	m, err := r.RenderMath(`x < \pi`)
	require.NoError(t, err)
	assert.Equal(t, `<span class="math">x &lt; \pi</span>`, m)

	assert.Equal(t, `<span class="text">a &amp; b</span>`, r.RenderText("a & b"))
}

func TestTerminalRenderer(t *testing.T) {
	r := TerminalRenderer{}

	lit := r.RenderLiteral(`<div class="section-label primary">Question:</div>`)
	assert.Contains(t, lit, "Question:")
	assert.NotContains(t, lit, "<div")

	m, err := r.RenderMath(`60^{\circ}`)
	require.NoError(t, err)
	assert.Contains(t, m, "60°")

	out := RenderString(textnorm.Normalize("Question: angle is 30 degrees", false), r, " ")
	assert.Contains(t, out, "Question:")
	assert.Contains(t, out, "30°")
	assert.False(t, strings.Contains(out, "<html>"))
}
