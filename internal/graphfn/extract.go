// Package graphfn pulls graphable "y = ..." functions out of algebra problem
// text.
package graphfn

import (
	"regexp"
	"strings"
)

type pattern struct {
	re *regexp.Regexp
	// bare patterns match expressions without an equals sign. A bare match
	// inside an equation match is part of that equation and is skipped.
	bare bool
}

var (
	yEquationRe = regexp.MustCompile(`\by\s*=\s*[^,;]+`)
	linearRe    = regexp.MustCompile(`\d+\s*x\s*[+-]\s*\d+`)
	quadraticRe = regexp.MustCompile(`\d+\s*x\^2\s*[+-]\s*\d+\s*x\s*[+-]\s*\d+`)
)

var patterns = []pattern{
	{re: yEquationRe},
	{re: regexp.MustCompile(`\bf\s*\(\s*x\s*\)\s*=\s*[^,;]+`)},
	{re: regexp.MustCompile(`\bg\s*\(\s*x\s*\)\s*=\s*[^,;]+`)},
	{re: regexp.MustCompile(`\bh\s*\(\s*x\s*\)\s*=\s*[^,;]+`)},
	{re: linearRe, bare: true},
	{re: quadraticRe, bare: true},
}

var (
	namedFuncRe   = regexp.MustCompile(`^[fgh]\s*\(\s*x\s*\)\s*=\s*`)
	leadingYRe    = regexp.MustCompile(`^y\s*=\s*`)
	fallbackRe    = regexp.MustCompile(`[^.;,]*?[xy][^.;,]*?=[^.;,]*`)
	fallbackXOnly = regexp.MustCompile(`^x\s*=`)
)

type span struct{ start, end int }

func (s span) within(o span) bool { return s.start >= o.start && s.end <= o.end }

// Extract returns the distinct graphable functions found in text, in order of
// discovery. The result is never nil.
func Extract(text string) []string {
	out := []string{}
	seen := map[string]bool{}
	add := func(fn string) {
		if fn != "" && !seen[fn] {
			seen[fn] = true
			out = append(out, fn)
		}
	}

	quadratics := toSpans(quadraticRe.FindAllStringIndex(text, -1))
	var equations []span
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			sp := span{loc[0], loc[1]}
			switch {
			case !p.bare:
				equations = append(equations, sp)
			case inside(sp, equations):
				continue
			case p.re == linearRe && inside(sp, quadratics):
				continue
			}
			add(clean(text[sp.start:sp.end]))
		}
	}

	if len(out) == 0 && strings.Contains(text, "=") {
		for _, m := range fallbackRe.FindAllString(text, -1) {
			fn := strings.TrimSpace(m)
			// x = c is not a function of x, and an equation mentioning y
			// without "y =" would need rearranging first.
			if fallbackXOnly.MatchString(fn) || !strings.Contains(fn, "y =") {
				continue
			}
			add(fn)
		}
	}
	return out
}

func inside(sp span, outer []span) bool {
	for _, o := range outer {
		if sp.within(o) {
			return true
		}
	}
	return false
}

func toSpans(locs [][]int) []span {
	out := make([]span, len(locs))
	for i, loc := range locs {
		out[i] = span{loc[0], loc[1]}
	}
	return out
}

func clean(match string) string {
	fn := strings.TrimSpace(match)
	fn = namedFuncRe.ReplaceAllString(fn, "y = ")
	fn = leadingYRe.ReplaceAllString(fn, "y = ")
	if !strings.Contains(fn, "=") {
		fn = "y = " + fn
	}
	return strings.TrimSpace(fn)
}
