// Package textnorm cleans model-generated problem text into a canonical form
// that the section segmenter and the mixed-content renderer can consume.
package textnorm

import (
	"regexp"
	"strings"
)

// maxRounds bounds the stabilisation loop in Normalize. Every pass only ever
// inserts a single space where none existed or removes markup, so real inputs
// settle within two or three rounds.
const maxRounds = 8

// Pass is one named rewrite step of the normalization pipeline.
type Pass struct {
	Name  string
	Apply func(string) string
}

var passes = []Pass{
	{Name: "unwrap-markers", Apply: unwrapMarkers},
	{Name: "unicode", Apply: foldUnicode},
	{Name: "html", Apply: cleanHTML},
	{Name: "latex-escapes", Apply: collapseEscapes},
	{Name: "geometry-notation", Apply: geometryNotation},
	{Name: "word-spacing", Apply: spaceWords},
	{Name: "section-markers", Apply: markSections},
	{Name: "bold", Apply: stripBold},
	{Name: "whitespace", Apply: collapseWhitespace},
}

// Passes returns the ordered normalization passes. The returned slice is a
// copy and may be modified by the caller.
func Passes() []Pass {
	out := make([]Pass, len(passes))
	copy(out, passes)
	return out
}

var solutionStartRe = regexp.MustCompile(`(?i)solution`)

// StripSolution removes everything from the first case-insensitive occurrence
// of "solution" to the end of the text.
func StripSolution(text string) string {
	loc := solutionStartRe.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]]
}

// Normalize cleans raw problem text. When hideSolution is set, the solution
// and everything after it is removed before any other processing.
//
// Normalize is idempotent: Normalize(Normalize(s, h), h) == Normalize(s, h).
func Normalize(raw string, hideSolution bool) string {
	if raw == "" {
		return ""
	}
	text := raw
	if hideSolution {
		text = StripSolution(text)
	}
	for i := 0; i < maxRounds; i++ {
		next := applyAll(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func applyAll(text string) string {
	for _, p := range passes {
		text = p.Apply(text)
	}
	return text
}

// fixpoint applies re with repl until the text stops changing. Regexp
// replacement does not revisit overlapping matches, so chained spacing such
// as "a1b2" needs more than one sweep.
func fixpoint(re *regexp.Regexp, repl, text string) string {
	for i := 0; i < 64; i++ {
		next := re.ReplaceAllString(text, repl)
		if next == text {
			return next
		}
		text = next
	}
	return text
}

var wsRunRe = regexp.MustCompile(`\s{2,}`)

func collapseWhitespace(text string) string {
	return strings.TrimSpace(wsRunRe.ReplaceAllString(text, " "))
}
