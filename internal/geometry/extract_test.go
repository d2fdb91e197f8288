package geometry

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathmentor/internal/textnorm"
)

func TestExtract_Dispatch(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"", KindLine},
		{"Solve 2x + 3 = 7", KindLine},
		{"In triangle ABC the sides are equal", KindTriangle},
		{"In \\triangle XYZ", KindTriangle},
		{"A circle and a triangle", KindTriangle},
		{"A circle of radius 3", KindCircle},
		{"Two lines meet at an angle of 40°", KindAngle},
		{"Find the perimeter of the rectangle", KindPolygon},
		{"A quadrilateral has four sides", KindPolygon},
		{"A regular hexagon", KindLine},
		{"A pentagon", KindLine},
		{"A regular hexagon polygon", KindPolygon},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := Extract(tt.text)
			assert.Equal(t, tt.want, s.Kind)
			require.NoError(t, s.Validate())
		})
	}
}

func TestExtract_TotalCoverage(t *testing.T) {
	corpus := []string{
		"", " ", "triangle", "circle", "angle", "square", "???", "(((", "A (1,", "circle O radius -3",
		"point A is on the circle", "angle ABC = ", "\\\\angle \\{x\\}", "pentagon hexagon",
	}
	for _, text := range corpus {
		s := Extract(text)
		assert.NoError(t, s.Validate(), "input %q", text)
		_, err := json.Marshal(s)
		assert.NoError(t, err)
	}
}

func TestExtract_TrianglePoints(t *testing.T) {
	s := Extract("Triangle with A (0,0), B (4, 0), C (2,3). Angle A is 45 and angle B is 60.")
	require.Equal(t, KindTriangle, s.Kind)

	assert.Equal(t, LabeledPoint{Label: "A", Point: Point{0, 0}}, s.Triangle.Points[0])
	assert.Equal(t, LabeledPoint{Label: "B", Point: Point{4, 0}}, s.Triangle.Points[1])
	assert.Equal(t, LabeledPoint{Label: "C", Point: Point{2, 3}}, s.Triangle.Points[2])
	assert.Equal(t, map[string]float64{"A": 45, "B": 60}, s.Triangle.Angles)
}

func TestExtract_TriangleDefault(t *testing.T) {
	s := Extract("An isosceles triangle with only A (1,1) given")
	assert.Equal(t, defaultTriangle, s.Triangle.Points)
	assert.Nil(t, s.Triangle.Angles)
}

func TestExtract_CircleOverride(t *testing.T) {
	s := Extract("A circle with center (2,1) and radius 5. Point A is at (7,1). Find B if angle APB = 60.")
	require.Equal(t, KindCircle, s.Kind)
	c := s.Circle

	require.NotNil(t, c.Angle)
	assert.Equal(t, 60.0, c.Angle.Measure)
	assert.Equal(t, "P", c.Angle.Vertex)
	assert.Equal(t, [2]string{"A", "B"}, c.Angle.Points)

	require.Len(t, c.Points, 2)
	assert.Equal(t, "A", c.Points[0].Label)
	assert.Equal(t, Point{7, 1}, *c.Points[0].At)
	assert.Equal(t, "B", c.Points[1].Label)
	assert.InDelta(t, 4.5, c.Points[1].At.X, 1e-9)
	assert.InDelta(t, 1+5*math.Sqrt(3)/2, c.Points[1].At.Y, 1e-9)
}

func TestExtract_CircleOverrideNormalized(t *testing.T) {
	s := Extract(textnorm.Normalize("circle P, \\angle APB = 60°", false))
	require.Equal(t, KindCircle, s.Kind)
	require.NotNil(t, s.Circle.Angle)
	assert.Equal(t, 60.0, s.Circle.Angle.Measure)
	assert.Equal(t, "P", s.Circle.Label)
}

func TestExtract_CircleGeneral(t *testing.T) {
	s := Extract("Circle Q has center at (1, -1) and radius of 3. Point R is at (4, -1). Point S is located on the circle. Point T is on the circle. Angle RQS = 90")
	c := s.Circle

	assert.Equal(t, "Q", c.Label)
	assert.Equal(t, Point{1, -1}, c.Center)
	assert.Equal(t, 3.0, c.Radius)
	require.Len(t, c.Points, 3)
	assert.Equal(t, BoundaryPoint{Label: "R", At: &Point{4, -1}}, c.Points[0])
	assert.Equal(t, BoundaryPoint{Label: "S"}, c.Points[1])
	assert.Equal(t, BoundaryPoint{Label: "T"}, c.Points[2])
	assert.Equal(t, &AngleDatum{Vertex: "Q", Points: [2]string{"R", "S"}, Measure: 90}, c.Angle)
}

func TestExtract_CircleDefaults(t *testing.T) {
	c := Extract("a circle with nothing else").Circle
	assert.Equal(t, "O", c.Label)
	assert.Equal(t, Point{}, c.Center)
	assert.Equal(t, 2.0, c.Radius)
	assert.Empty(t, c.Points)
	assert.Nil(t, c.Angle)
}

func TestCircle_Placed(t *testing.T) {
	at := Point{9, 9}
	c := Circle{
		Center: Point{1, 1},
		Radius: 2,
		Points: []BoundaryPoint{{Label: "A"}, {Label: "X", At: &at}, {Label: "B"}},
	}
	got := c.Placed()
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Label)
	assert.InDelta(t, 3, got[0].X, 1e-9)
	assert.InDelta(t, 1, got[0].Y, 1e-9)
	assert.Equal(t, LabeledPoint{Label: "X", Point: at}, got[1])
	assert.Equal(t, "B", got[2].Label)
	assert.InDelta(t, -1, got[2].X, 1e-9)
	assert.InDelta(t, 1, got[2].Y, 1e-9)
}

func TestExtract_Angle(t *testing.T) {
	def := Extract("Measure the angle").Angle
	assert.Equal(t, 60.0, def.Measure)
	assert.Equal(t, Point{1, 0}, def.Rays[0])

	s := Extract("An angle of 90 degrees").Angle
	assert.Equal(t, 90.0, s.Measure)
	assert.InDelta(t, 0, s.Rays[1].X, 1e-9)
	assert.InDelta(t, 1, s.Rays[1].Y, 1e-9)

	n := Extract(textnorm.Normalize("the angle is 30°", false)).Angle
	assert.Equal(t, 30.0, n.Measure)
}

func TestExtract_Polygon(t *testing.T) {
	sq := Extract("a square").Polygon
	assert.Len(t, sq.Points, 4)

	pent := Extract("a regular polygon: pentagon").Polygon
	require.Len(t, pent.Points, 5)
	assert.Equal(t, "E", pent.Points[4].Label)
	assert.InDelta(t, 0, pent.Points[0].X, 1e-9)
	assert.InDelta(t, -1, pent.Points[0].Y, 1e-9)

	hex := Extract("a polygon with six sides, a hexagon").Polygon
	assert.Len(t, hex.Points, 6)

	mixed := Extract("a square inside a hexagon polygon").Polygon
	assert.Len(t, mixed.Points, 4)
}

func TestExtract_Line(t *testing.T) {
	l := Extract("").Line
	require.NotNil(t, l)
	assert.Equal(t, Point{-2, 0}, l.Start)
	assert.Equal(t, Point{2, 0}, l.End)
	assert.Empty(t, l.Points)

	withPoints := Extract("Plot P (1,2) and Q (3,4)").Line
	assert.Len(t, withPoints.Points, 2)
}

func TestScene_Validate(t *testing.T) {
	assert.Error(t, Scene{}.Validate())
	assert.Error(t, Scene{Kind: KindCircle, Line: &Line{}}.Validate())
	assert.Error(t, Scene{Kind: KindPolygon, Polygon: &Polygon{}}.Validate())
	assert.Error(t, Scene{Kind: KindCircle, Circle: &Circle{}}.Validate())
	assert.NoError(t, Scene{Kind: KindLine, Line: &Line{}}.Validate())
}

func TestScene_Describe(t *testing.T) {
	d := Extract("A circle with center (2,1) and radius 5. Point A is at (7,1). angle APB = 60").Describe()
	assert.Contains(t, d, "Circle O centered at (2,1), radius 5")
	assert.Contains(t, d, "∠APB = 60°")
}
