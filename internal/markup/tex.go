package markup

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnbalanced is returned when braces in a math span do not pair up.
var ErrUnbalanced = errors.New("markup: unbalanced braces")

// UnknownCommandError is returned for a LaTeX command outside the supported
// subset.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("markup: unsupported command \\%s", e.Command)
}

var symbols = map[string]string{
	"angle": "∠", "triangle": "△", "circ": "°", "degree": "°",
	"cdot": "·", "times": "×", "div": "÷", "pm": "±", "mp": "∓",
	"pi": "π", "theta": "θ", "alpha": "α", "beta": "β", "gamma": "γ",
	"delta": "δ", "Delta": "Δ", "lambda": "λ", "mu": "μ", "sigma": "σ",
	"Sigma": "Σ", "phi": "φ", "omega": "ω", "infty": "∞",
	"le": "≤", "leq": "≤", "ge": "≥", "geq": "≥", "ne": "≠", "neq": "≠",
	"approx": "≈", "sim": "∼", "perp": "⊥", "parallel": "∥", "cong": "≅",
	"to": "→", "rightarrow": "→", "Rightarrow": "⇒", "leftarrow": "←",
	"in": "∈", "cup": "∪", "cap": "∩", "sum": "∑", "int": "∫",
	"ldots": "…", "cdots": "⋯", "dots": "…",
	"sin": "sin", "cos": "cos", "tan": "tan", "log": "log", "ln": "ln",
	"left": "", "right": "", "quad": " ", "qquad": "  ",
	"%": "%", "$": "$", "{": "{", "}": "}", ",": " ", ";": " ", ":": " ", "!": "",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵', '6': '⁶',
	'7': '⁷', '8': '⁸', '9': '⁹', '+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽',
	')': '⁾', 'n': 'ⁿ', 'i': 'ⁱ', 'x': 'ˣ', '°': '°',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅', '6': '₆',
	'7': '₇', '8': '₈', '9': '₉', '+': '₊', '-': '₋', '=': '₌', '(': '₍',
	')': '₎',
}

var (
	degreeRe    = regexp.MustCompile(`\^\{\\circ\}|\^\\circ`)
	fracRe      = regexp.MustCompile(`\\[dt]?frac\{([^{}]*)\}\{([^{}]*)\}`)
	sqrtRe      = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
	textRe      = regexp.MustCompile(`\\(?:text|mathrm|textbf|mathbf|operatorname)\{([^{}]*)\}`)
	supGroupRe  = regexp.MustCompile(`\^\{([^{}]*)\}`)
	supSingleRe = regexp.MustCompile(`\^([0-9a-zA-Z])`)
	subGroupRe  = regexp.MustCompile(`_\{([^{}]*)\}`)
	subSingleRe = regexp.MustCompile(`_([0-9])`)
	commandRe   = regexp.MustCompile(`\\([a-zA-Z]+|[%${},;:!])`)
	atomRe      = regexp.MustCompile(`^[0-9A-Za-z.]+$`)
)

// ToUnicode converts a small LaTeX subset to plain Unicode text.
func ToUnicode(tex string) (string, error) {
	if !balanced(tex) {
		return "", ErrUnbalanced
	}
	s := degreeRe.ReplaceAllString(tex, "°")
	s = textRe.ReplaceAllString(s, "$1")

	for fracRe.MatchString(s) || sqrtRe.MatchString(s) {
		s = fracRe.ReplaceAllStringFunc(s, func(m string) string {
			g := fracRe.FindStringSubmatch(m)
			return group(g[1]) + "/" + group(g[2])
		})
		s = sqrtRe.ReplaceAllStringFunc(s, func(m string) string {
			return "√" + group(sqrtRe.FindStringSubmatch(m)[1])
		})
	}

	var unknown string
	s = commandRe.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1:]
		if sym, ok := symbols[name]; ok {
			return sym
		}
		if unknown == "" {
			unknown = name
		}
		return m
	})
	if unknown != "" {
		return "", &UnknownCommandError{Command: unknown}
	}

	s = supGroupRe.ReplaceAllStringFunc(s, func(m string) string {
		return script(supGroupRe.FindStringSubmatch(m)[1], superscripts, "^")
	})
	s = supSingleRe.ReplaceAllStringFunc(s, func(m string) string {
		return script(m[1:], superscripts, "^")
	})
	s = subGroupRe.ReplaceAllStringFunc(s, func(m string) string {
		return script(subGroupRe.FindStringSubmatch(m)[1], subscripts, "_")
	})
	s = subSingleRe.ReplaceAllStringFunc(s, func(m string) string {
		return script(m[1:], subscripts, "_")
	})

	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	return s, nil
}

func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func group(s string) string {
	if atomRe.MatchString(s) {
		return s
	}
	return "(" + s + ")"
}

// script maps every rune of s through table, falling back to a caret or
// underscore group when a rune has no Unicode equivalent.
func script(s string, table map[rune]rune, op string) string {
	var b strings.Builder
	for _, r := range s {
		mapped, ok := table[r]
		if !ok {
			if len([]rune(s)) == 1 {
				return op + s
			}
			return op + "(" + s + ")"
		}
		b.WriteRune(mapped)
	}
	return b.String()
}
