// Package markup splits normalized problem text into literal-markup and
// math-markup spans and renders them through a pluggable Renderer.
package markup

import (
	"regexp"
	"strings"
)

// Mode says how a span should be displayed.
type Mode string

const (
	ModeLiteral Mode = "literal-markup"
	ModeMath    Mode = "math-markup"
	// ModeText marks a math span that could not be typeset and is shown as
	// plain text instead.
	ModeText Mode = "text"
)

// Segment is one span of partitioned text.
type Segment struct {
	Mode    Mode   `json:"mode"`
	Payload string `json:"payload"`
}

var modeMarkerRe = regexp.MustCompile(`(?i)</?(?:html|math)>`)

// Partition splits s on <html>…</html> (literal markup) and <math>…</math>
// (explicit math) markers. Unmarked spans are math. Blank spans are dropped
// and payloads are trimmed.
func Partition(s string) []Segment {
	var segs []Segment
	inLiteral, inMath := false, false
	emit := func(part string) {
		part = strings.TrimSpace(part)
		if part == "" {
			return
		}
		mode := ModeMath
		if inLiteral && !inMath {
			mode = ModeLiteral
		}
		segs = append(segs, Segment{Mode: mode, Payload: part})
	}

	last := 0
	for _, loc := range modeMarkerRe.FindAllStringIndex(s, -1) {
		emit(s[last:loc[0]])
		switch strings.ToLower(s[loc[0]:loc[1]]) {
		case "<html>":
			inLiteral = true
		case "</html>":
			inLiteral = false
		case "<math>":
			inMath = true
		case "</math>":
			inMath = false
		}
		last = loc[1]
	}
	emit(s[last:])
	return segs
}

// Renderer typesets spans for one output surface.
type Renderer interface {
	RenderLiteral(payload string) string
	// RenderMath returns an error when the payload cannot be typeset.
	RenderMath(payload string) (string, error)
	RenderText(payload string) string
}

// Rendered is the display output for one segment.
type Rendered struct {
	Mode   Mode   `json:"mode"`
	Output string `json:"output"`
}

// Render renders every segment. A math span the renderer rejects is shown as
// plain text rather than dropped.
func Render(segs []Segment, r Renderer) []Rendered {
	out := make([]Rendered, 0, len(segs))
	for _, seg := range segs {
		switch seg.Mode {
		case ModeLiteral:
			out = append(out, Rendered{Mode: ModeLiteral, Output: r.RenderLiteral(seg.Payload)})
		case ModeMath:
			typeset, err := r.RenderMath(seg.Payload)
			if err != nil {
				out = append(out, Rendered{Mode: ModeText, Output: r.RenderText(seg.Payload)})
				continue
			}
			out = append(out, Rendered{Mode: ModeMath, Output: typeset})
		default:
			out = append(out, Rendered{Mode: ModeText, Output: r.RenderText(seg.Payload)})
		}
	}
	return out
}

// RenderString partitions s, renders it and joins the outputs with sep.
func RenderString(s string, r Renderer, sep string) string {
	rendered := Render(Partition(s), r)
	parts := make([]string, len(rendered))
	for i, x := range rendered {
		parts[i] = x.Output
	}
	return strings.Join(parts, sep)
}
