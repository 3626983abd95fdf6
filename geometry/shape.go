// SPDX-License-Identifier: MIT

package geometry

import (
	"fmt"
	"math"
)

// Kind tags a Shape.
type Kind uint8

const (
	KindPoint Kind = iota
	KindSegment
	KindRay
	KindComplementaryRay
	KindLine
	KindPerpendicularBisector
	KindCircle
	KindMeasurement
)

// String returns the library keyword of the kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindSegment:
		return "LineSegment"
	case KindRay:
		return "Ray"
	case KindComplementaryRay:
		return "CompRay"
	case KindLine:
		return "Line"
	case KindPerpendicularBisector:
		return "PerpBi"
	case KindCircle:
		return "Circle"
	case KindMeasurement:
		return "Measurement"
	default:
		return "unknown"
	}
}

// LineLike reports whether k is one of the straight shapes.
func (k Kind) LineLike() bool {
	return k >= KindSegment && k <= KindPerpendicularBisector
}

// Point is a position in the plane.
type Point struct{ X, Y float64 }

// Shape is the geometry of one figure shape.
type Shape struct {
	Kind           Kind
	X1, Y1, X2, Y2 float64
	R              float64
	Value          float64
}

// NewPoint returns a point shape.
func NewPoint(x, y float64) Shape { return Shape{Kind: KindPoint, X1: x, Y1: y} }

// Through returns a line-like shape of kind k through a and b. For a
// perpendicular bisector a and b are the two points it bisects.
func Through(k Kind, a, b Point) Shape {
	if k == KindPerpendicularBisector {
		mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
		return Shape{Kind: k, X1: mx, Y1: my, X2: mx + b.Y - a.Y, Y2: my - b.X + a.X}
	}

	return Shape{Kind: k, X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// NewCircle returns the circle about centre through on.
func NewCircle(centre, on Point) Shape {
	return Shape{Kind: KindCircle, X1: centre.X, Y1: centre.Y, R: Distance(centre, on)}
}

// NewMeasurement wraps a measured value.
func NewMeasurement(v float64) Shape { return Shape{Kind: KindMeasurement, Value: v} }

// Point returns the first defining point.
func (s Shape) Point() Point { return Point{s.X1, s.Y1} }

// Second returns the second defining point.
func (s Shape) Second() Point { return Point{s.X2, s.Y2} }

// String renders the shape for logs.
func (s Shape) String() string {
	switch {
	case s.Kind == KindPoint:
		return fmt.Sprintf("Point(%g,%g)", s.X1, s.Y1)
	case s.Kind.LineLike():
		return fmt.Sprintf("%s(%g,%g;%g,%g)", s.Kind, s.X1, s.Y1, s.X2, s.Y2)
	case s.Kind == KindCircle:
		return fmt.Sprintf("Circle(%g,%g;r=%g)", s.X1, s.Y1, s.R)
	default:
		return fmt.Sprintf("%s(%g)", s.Kind, s.Value)
	}
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// Angle returns the unsigned angle p1-apex-p2 in degrees, in [0, 180].
// A side of zero length gives 0.
func Angle(p1, apex, p2 Point) float64 {
	if p1 == apex || p2 == apex {
		return 0
	}
	t1 := math.Atan2(p1.Y-apex.Y, p1.X-apex.X)
	t2 := math.Atan2(p2.Y-apex.Y, p2.X-apex.X)
	d := math.Abs(t2 - t1)
	if d > math.Pi {
		d = 2*math.Pi - d
	}

	return d * 180 / math.Pi
}
