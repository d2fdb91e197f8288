package sections

import "regexp"

// questionRule extracts a candidate question. full is the whole text and
// beforeSolution the part preceding any solution, which is where the
// heuristic rules look so solution steps are never mistaken for the question.
type questionRule struct {
	name    string
	extract func(full, beforeSolution string) string
}

var questionRules = []questionRule{
	{name: "label", extract: labelledQuestion},
	{name: "interrogative", extract: interrogativeQuestion},
	{name: "marker", extract: markerQuestion},
	{name: "last-question", extract: lastQuestion},
}

var (
	questionLabelRe = regexp.MustCompile(`(?i)question\s*:`)
	questionStopRe  = regexp.MustCompile(`(?i)answer|solution|\n`)
)

func labelledQuestion(full, _ string) string {
	loc := questionLabelRe.FindStringIndex(full)
	if loc == nil {
		return ""
	}
	rest := full[loc[1]:]
	if stop := questionStopRe.FindStringIndex(rest); stop != nil {
		rest = rest[:stop[0]]
	}
	return rest
}

var interrogatives = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwhat\s+is\s+[^?]+\?`),
	regexp.MustCompile(`(?i)\bfind\s+[^?]+\?`),
	regexp.MustCompile(`(?i)\bcalculate\s+[^?]+\?`),
	regexp.MustCompile(`(?i)\bdetermine\s+[^?]+\?`),
	regexp.MustCompile(`(?i)\bcompute\s+[^?]+\?`),
	regexp.MustCompile(`(?i)\bexpress\s+[^?]+\?`),
}

func interrogativeQuestion(_, beforeSolution string) string {
	for _, re := range interrogatives {
		if m := re.FindString(beforeSolution); m != "" {
			return m
		}
	}
	return ""
}

var (
	closeMarkerRe = regexp.MustCompile(`(?i)</html>`)
	openMarkerRe  = regexp.MustCompile(`(?i)<html>|\n`)
)

// markerQuestion takes the text following the first closing marker up to the
// next opening marker or line break.
func markerQuestion(_, beforeSolution string) string {
	loc := closeMarkerRe.FindStringIndex(beforeSolution)
	if loc == nil {
		return ""
	}
	rest := beforeSolution[loc[1]:]
	if end := openMarkerRe.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return rest
}

var questionSentenceRe = regexp.MustCompile(`[^.!?]+\?`)

func lastQuestion(_, beforeSolution string) string {
	all := questionSentenceRe.FindAllString(beforeSolution, -1)
	if len(all) == 0 {
		return ""
	}
	return all[len(all)-1]
}
