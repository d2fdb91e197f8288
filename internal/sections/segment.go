// Package sections splits normalized problem text into its problem statement,
// question, answer space and solution.
package sections

import (
	"regexp"
	"strings"
)

// ProblemSections holds the four display sections of a problem. Any field
// may be empty.
type ProblemSections struct {
	ProblemStatement string `json:"problemStatement"`
	Question         string `json:"question"`
	AnswerSpace      string `json:"answerSpace"`
	Solution         string `json:"solution"`
}

var (
	solutionToAnswerRe = regexp.MustCompile(`(?is)solution(?:\s*\([^)]*\))?\s*:?(.*)answer:`)
	solutionToEndRe    = regexp.MustCompile(`(?is)solution(?:\s*\([^)]*\))?\s*:?(.*)$`)
	solutionStartRe    = regexp.MustCompile(`(?i)solution`)

	answerSpaceRe  = regexp.MustCompile(`(?i)answer\s+space\s*:?`)
	answerSpaceEnd = regexp.MustCompile(`(?i)solution|\n`)

	questionLineRe    = regexp.MustCompile(`(?i)question\s*:.*`)
	solutionOnwardRe  = regexp.MustCompile(`(?is)solution.*$`)
	answerSpaceLineRe = regexp.MustCompile(`(?i)answer\s+space\s*:?.*`)

	structuralTagRe = regexp.MustCompile(`(?i)</?(?:html|div|math)\b[^<>]*>`)
	blankRunRe      = regexp.MustCompile(`[ \t]{2,}`)
)

// Segment splits text into sections. It accepts raw model output as well as
// the output of textnorm.Normalize; section markers are matched like plain
// labels and never appear in the returned fields.
func Segment(text string) ProblemSections {
	var s ProblemSections

	s.Solution = extractSolution(text)

	preSolution := text
	if loc := solutionStartRe.FindStringIndex(text); loc != nil {
		preSolution = text[:loc[0]]
	}
	for _, rule := range questionRules {
		if q := cleanQuestion(rule.extract(text, preSolution)); q != "" {
			s.Question = q
			break
		}
	}

	if loc := answerSpaceRe.FindStringIndex(text); loc != nil {
		rest := text[loc[1]:]
		if end := answerSpaceEnd.FindStringIndex(rest); end != nil {
			rest = rest[:end[0]]
		}
		s.AnswerSpace = tidy(stripStructure(rest))
	}

	s.ProblemStatement = problemStatement(text, s.Question)
	return s
}

func extractSolution(text string) string {
	if m := solutionToAnswerRe.FindStringSubmatch(text); m != nil {
		return tidy(stripStructure(m[1]))
	}
	if m := solutionToEndRe.FindStringSubmatch(text); m != nil {
		return tidy(stripStructure(m[1]))
	}
	return ""
}

func problemStatement(text, question string) string {
	ps := questionLineRe.ReplaceAllString(text, "")
	ps = solutionOnwardRe.ReplaceAllString(ps, "")
	ps = answerSpaceLineRe.ReplaceAllString(ps, "")
	ps = tidy(stripStructure(ps))
	if question == "" {
		return ps
	}
	for strings.Contains(ps, question) {
		ps = strings.ReplaceAll(ps, question, "")
		ps = tidy(ps)
	}
	return ps
}

func stripStructure(s string) string {
	return structuralTagRe.ReplaceAllString(s, "")
}

func tidy(s string) string {
	return strings.TrimSpace(blankRunRe.ReplaceAllString(s, " "))
}

var (
	leadingStarsRe  = regexp.MustCompile(`^\s*\*\*\s*`)
	trailingStarsRe = regexp.MustCompile(`\s*\*\*\s*$`)
)

func cleanQuestion(q string) string {
	q = stripStructure(q)
	q = leadingStarsRe.ReplaceAllString(q, "")
	q = trailingStarsRe.ReplaceAllString(q, "")
	return tidy(q)
}
