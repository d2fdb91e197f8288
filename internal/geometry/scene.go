// Package geometry turns geometry problem text into a renderable scene
// description. Extraction never fails: when the text lacks detail, a fixed
// default scene for the detected kind is returned.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind identifies which variant of a Scene is populated.
type Kind string

const (
	KindTriangle Kind = "triangle"
	KindCircle   Kind = "circle"
	KindAngle    Kind = "angle"
	KindPolygon  Kind = "polygon"
	KindLine     Kind = "line"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LabeledPoint is a named point.
type LabeledPoint struct {
	Label string `json:"label"`
	Point
}

// Triangle is a three-vertex figure with optional per-vertex angle measures
// in degrees.
type Triangle struct {
	Points [3]LabeledPoint     `json:"points"`
	Angles map[string]float64 `json:"angles,omitempty"`
}

// BoundaryPoint is a point on a circle. At is nil when the text names the
// point without giving coordinates.
type BoundaryPoint struct {
	Label string `json:"label"`
	At    *Point `json:"at,omitempty"`
}

// AngleDatum is an inscribed or central angle such as ∠APB.
type AngleDatum struct {
	Vertex  string    `json:"vertex"`
	Points  [2]string `json:"points"`
	Measure float64   `json:"measure"`
}

type Circle struct {
	Label  string          `json:"label"`
	Center Point           `json:"center"`
	Radius float64         `json:"radius"`
	Points []BoundaryPoint `json:"points"`
	Angle  *AngleDatum     `json:"angle,omitempty"`
}

// Placed resolves every boundary point to coordinates. Points without
// coordinates are spread evenly around the circumference, one slot per
// unplaced point in order of first appearance, starting at angle zero.
func (c Circle) Placed() []LabeledPoint {
	unplaced := 0
	for _, p := range c.Points {
		if p.At == nil {
			unplaced++
		}
	}
	out := make([]LabeledPoint, 0, len(c.Points))
	slot := 0
	for _, p := range c.Points {
		if p.At != nil {
			out = append(out, LabeledPoint{Label: p.Label, Point: *p.At})
			continue
		}
		theta := 2 * math.Pi * float64(slot) / float64(unplaced)
		slot++
		out = append(out, LabeledPoint{
			Label: p.Label,
			Point: Point{
				X: c.Center.X + c.Radius*math.Cos(theta),
				Y: c.Center.Y + c.Radius*math.Sin(theta),
			},
		})
	}
	return out
}

// Angle is a vertex with two unit rays. Measure is in degrees.
type Angle struct {
	Vertex  Point    `json:"vertex"`
	Rays    [2]Point `json:"rays"`
	Measure float64  `json:"measure"`
}

type Polygon struct {
	Points []LabeledPoint `json:"points"`
}

type Line struct {
	Start  Point          `json:"start"`
	End    Point          `json:"end"`
	Points []LabeledPoint `json:"points,omitempty"`
}

// Scene is a tagged union; exactly the variant named by Kind is non-nil.
type Scene struct {
	Kind     Kind      `json:"kind"`
	Triangle *Triangle `json:"triangle,omitempty"`
	Circle   *Circle   `json:"circle,omitempty"`
	Angle    *Angle    `json:"angle,omitempty"`
	Polygon  *Polygon  `json:"polygon,omitempty"`
	Line     *Line     `json:"line,omitempty"`
}

var errNoVariant = errors.New("geometry: scene has no variant for its kind")

// Validate reports whether the scene is well formed.
func (s Scene) Validate() error {
	set := 0
	for _, ok := range []bool{s.Triangle != nil, s.Circle != nil, s.Angle != nil, s.Polygon != nil, s.Line != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("geometry: scene has %d variants, want 1", set)
	}

	switch s.Kind {
	case KindTriangle:
		if s.Triangle == nil {
			return errNoVariant
		}
	case KindCircle:
		if s.Circle == nil {
			return errNoVariant
		}
		if s.Circle.Radius <= 0 {
			return fmt.Errorf("geometry: circle radius %v is not positive", s.Circle.Radius)
		}
	case KindAngle:
		if s.Angle == nil {
			return errNoVariant
		}
	case KindPolygon:
		if s.Polygon == nil {
			return errNoVariant
		}
		if len(s.Polygon.Points) < 3 {
			return fmt.Errorf("geometry: polygon has %d points", len(s.Polygon.Points))
		}
	case KindLine:
		if s.Line == nil {
			return errNoVariant
		}
	default:
		return fmt.Errorf("geometry: unknown kind %q", s.Kind)
	}
	return nil
}

// Describe renders a one-line-per-element plain text summary of the scene.
func (s Scene) Describe() string {
	var b strings.Builder
	switch s.Kind {
	case KindTriangle:
		fmt.Fprintf(&b, "Triangle %s", joinPoints(s.Triangle.Points[:]))
		for _, p := range s.Triangle.Points {
			if deg, ok := s.Triangle.Angles[p.Label]; ok {
				fmt.Fprintf(&b, "\n  ∠%s = %s°", p.Label, num(deg))
			}
		}
	case KindCircle:
		c := s.Circle
		fmt.Fprintf(&b, "Circle %s centered at (%s,%s), radius %s", c.Label, num(c.Center.X), num(c.Center.Y), num(c.Radius))
		if pts := c.Placed(); len(pts) > 0 {
			fmt.Fprintf(&b, "\n  points %s", joinPoints(pts))
		}
		if c.Angle != nil {
			fmt.Fprintf(&b, "\n  ∠%s%s%s = %s°", c.Angle.Points[0], c.Angle.Vertex, c.Angle.Points[1], num(c.Angle.Measure))
		}
	case KindAngle:
		fmt.Fprintf(&b, "Angle of %s° at (%s,%s)", num(s.Angle.Measure), num(s.Angle.Vertex.X), num(s.Angle.Vertex.Y))
	case KindPolygon:
		fmt.Fprintf(&b, "Polygon %s", joinPoints(s.Polygon.Points))
	case KindLine:
		fmt.Fprintf(&b, "Line from (%s,%s) to (%s,%s)", num(s.Line.Start.X), num(s.Line.Start.Y), num(s.Line.End.X), num(s.Line.End.Y))
		if len(s.Line.Points) > 0 {
			fmt.Fprintf(&b, "\n  points %s", joinPoints(s.Line.Points))
		}
	}
	return b.String()
}

func joinPoints(pts []LabeledPoint) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%s(%s,%s)", p.Label, num(p.X), num(p.Y))
	}
	return strings.Join(parts, " ")
}

func num(f float64) string {
	return fmt.Sprintf("%.4g", f)
}
