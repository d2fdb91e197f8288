package textnorm

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

func foldUnicode(text string) string {
	return norm.NFC.String(width.Fold.String(text))
}

var (
	reservedTagRe = regexp.MustCompile(`(?i)</?(?:html|div|p)\s*/?>`)
	breakTagRe    = regexp.MustCompile(`(?i)<br\s*/?>`)
	supOpenRe     = regexp.MustCompile(`(?i)<sup\s*>`)
	subOpenRe     = regexp.MustCompile(`(?i)<sub\s*>`)
	supSubCloseRe = regexp.MustCompile(`(?i)</su[bp]\s*>`)
	anyTagRe      = regexp.MustCompile(`</?([A-Za-z][A-Za-z0-9]*)((?:\s[^<>]*)?)/?>`)
)

// cleanHTML decodes entities until stable and removes the markup models
// tend to emit. <math> is left alone; it is an explicit math-mode marker.
// Any other tag is dropped, keeping its inner text.
func cleanHTML(text string) string {
	for i := 0; i < 4; i++ {
		next := html.UnescapeString(text)
		if next == text {
			break
		}
		text = next
	}
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = breakTagRe.ReplaceAllString(text, "\n")
	text = reservedTagRe.ReplaceAllString(text, "")
	text = supOpenRe.ReplaceAllString(text, "^{")
	text = subOpenRe.ReplaceAllString(text, "_{")
	text = supSubCloseRe.ReplaceAllString(text, "}")
	return anyTagRe.ReplaceAllStringFunc(text, dropTag)
}

// formatTags are tags dropped even when followed by bare words, so that
// "<span class>" goes but "x<y and y>z" survives as an inequality.
var formatTags = map[string]bool{
	"b": true, "i": true, "u": true, "em": true, "strong": true, "span": true,
	"small": true, "big": true, "font": true, "body": true, "head": true,
	"section": true, "article": true, "center": true, "code": true, "pre": true,
	"ul": true, "ol": true, "li": true, "table": true, "tr": true, "td": true,
	"th": true, "img": true, "a": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
}

func dropTag(tag string) string {
	m := anyTagRe.FindStringSubmatch(tag)
	name := strings.ToLower(m[1])
	if name == "math" {
		return tag
	}
	if attrs := strings.TrimSpace(m[2]); attrs != "" && !strings.Contains(attrs, "=") && !formatTags[name] {
		return tag
	}
	return ""
}

var doubledEscapeRe = regexp.MustCompile(`\\{2,}(angle|triangle|begin|end|frac)`)

func collapseEscapes(text string) string {
	return doubledEscapeRe.ReplaceAllString(text, `\$1`)
}

var (
	geoCommandRe = regexp.MustCompile(`\\(angle|triangle)\s*([A-Z]+)`)
	degreeRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:°|º|degrees|degree)`)
	coordRe      = regexp.MustCompile(`\(\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)`)
)

func geometryNotation(text string) string {
	text = geoCommandRe.ReplaceAllString(text, `\$1 $2`)
	text = degreeRe.ReplaceAllString(text, `${1}^{\circ}`)
	return coordRe.ReplaceAllString(text, `($1,$2)`)
}

// keywords are problem vocabulary that models frequently glue together
// ("trianglearea", "Findthe"). Words shorter than four letters and words
// that commonly prefix ordinary English ("line", "there") are left out.
var keywords = []string{
	"problem", "statement", "question", "solution", "answer",
	"triangle", "circle", "angle", "area", "perimeter", "radius",
	"diameter", "circumference", "center", "points", "point", "segment",
	"polygon", "square", "rectangle", "pentagon", "hexagon",
	"quadrilateral", "length", "width", "height", "sides", "side", "base",
	"volume", "equation", "function", "graph", "slope", "find",
	"calculate", "determine", "compute", "express", "solve", "given",
	"what", "value", "coordinates",
}

type spacingRule struct {
	re   *regexp.Regexp
	repl string
}

var spacingRules = buildSpacingRules()

func buildSpacingRules() []spacingRule {
	words := append([]string(nil), keywords...)
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })

	lower := make([]string, len(words))
	capitalized := make([]string, len(words))
	for i, w := range words {
		lower[i] = w
		capitalized[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	lowerAlt := strings.Join(lower, "|")
	capAlt := strings.Join(capitalized, "|")

	return []spacingRule{
		{regexp.MustCompile(`([a-z])([A-Z])`), "$1 $2"},
		{regexp.MustCompile(`([A-Z])([A-Z][a-z])`), "$1 $2"},
		{regexp.MustCompile(`([.,])([A-Z])`), "$1 $2"},
		{regexp.MustCompile(`([a-z]{2})(\d)`), "$1 $2"},
		{regexp.MustCompile(`(\d)([a-z])`), "$1 $2"},
		{regexp.MustCompile(`([a-z])([-–—])([a-z])`), "$1 $2 $3"},
		{regexp.MustCompile(`([A-Za-z]):([A-Za-z])`), "$1: $2"},
		{regexp.MustCompile(`([^\s=<>!])=`), "$1 ="},
		{regexp.MustCompile(`([^\s=<>!])([<>!]=)`), "$1 $2"},
		{regexp.MustCompile(`=([^\s=])`), "= $1"},
		{regexp.MustCompile(`(\d)([+*/-])([0-9A-Za-z(])`), "$1 $2 $3"},
		{regexp.MustCompile(`([0-9A-Za-z)])([+*/-])(\d)`), "$1 $2 $3"},
		{regexp.MustCompile(`([0-9A-Za-z)])([+*])([0-9A-Za-z(])`), "$1 $2 $3"},
		{regexp.MustCompile(`([0-9])(` + capAlt + `)`), "$1 $2"},
		{regexp.MustCompile(`(` + lowerAlt + `|` + capAlt + `)(` + lowerAlt + `)`), "$1 $2"},
	}
}

func spaceWords(text string) string {
	for _, r := range spacingRules {
		text = fixpoint(r.re, r.repl, text)
	}
	return text
}

var (
	markerRe        = regexp.MustCompile(`<html><div class="section-label (?:primary|success|info)">([^<]*)</div></html>`)
	questionLabelRe = regexp.MustCompile(`Question\s*:`)
	answerLabelRe   = regexp.MustCompile(`Answer\s*:`)
	solutionLabelRe = regexp.MustCompile(`Solution\s*(?:\([^)]*\))?\s*:`)
	bareSolutionRe  = regexp.MustCompile(`\^\{2\}Solution\b`)
)

// Marker returns the literal-markup fragment used to tag a section label.
// The class word is one of "primary", "success" or "info".
func Marker(class, label string) string {
	return `<html><div class="section-label ` + class + `">` + label + `</div></html>`
}

func unwrapMarkers(text string) string {
	return markerRe.ReplaceAllString(text, "$1")
}

func markSections(text string) string {
	text = questionLabelRe.ReplaceAllLiteralString(text, Marker("primary", "Question:"))
	text = answerLabelRe.ReplaceAllLiteralString(text, Marker("success", "Answer:"))
	text = solutionLabelRe.ReplaceAllLiteralString(text, Marker("info", "Solution:"))
	return bareSolutionRe.ReplaceAllLiteralString(text, "^{2}"+Marker("info", "Solution"))
}

var (
	boldAfterMarkerRe  = regexp.MustCompile(`</html>\s*\*\*`)
	boldBeforeMarkerRe = regexp.MustCompile(`\*\*\s*<html>`)
	boldPairRe         = regexp.MustCompile(`\*\*\s*([^*]+?)\s*\*\*`)
)

func stripBold(text string) string {
	text = boldAfterMarkerRe.ReplaceAllString(text, "</html> ")
	text = boldBeforeMarkerRe.ReplaceAllString(text, " <html>")

	locs := boldPairRe.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		if loc[0] > 0 && padBefore(text[loc[0]-1]) {
			b.WriteByte(' ')
		}
		b.WriteString(text[loc[2]:loc[3]])
		if loc[1] < len(text) && padAfter(text[loc[1]]) {
			b.WriteByte(' ')
		}
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordByte(c byte) bool {
	return c >= 0x80 || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func padBefore(c byte) bool {
	return isWordByte(c) || strings.IndexByte(".,:;?!)", c) >= 0
}

func padAfter(c byte) bool {
	return isWordByte(c) || c == '('
}
