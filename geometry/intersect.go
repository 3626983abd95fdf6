// SPDX-License-Identifier: MIT

package geometry

import (
	"math"
	"sort"
)

// DefaultEpsilon is the tolerance Analytic uses when none is set.
const DefaultEpsilon = 1e-9

// Analytic intersects shapes with closed-form formulas.
type Analytic struct {
	// Epsilon is the tolerance for tangency, parallelism and extent tests.
	// Zero means DefaultEpsilon.
	Epsilon float64
}

func (a Analytic) eps() float64 {
	if a.Epsilon > 0 {
		return a.Epsilon
	}

	return DefaultEpsilon
}

// Intersect returns the points common to s and t. Measurements intersect
// nothing. Coincident lines and concentric circles yield no points.
func (a Analytic) Intersect(s, t Shape) []Point {
	// 1. Order the pair: point first, then line-like, then circle
	if rank(t.Kind) < rank(s.Kind) {
		s, t = t, s
	}
	eps := a.eps()
	switch {
	case s.Kind == KindMeasurement || t.Kind == KindMeasurement:
		return nil
	case s.Kind == KindPoint:
		p := s.Point()
		if t.Kind == KindPoint {
			if Distance(p, t.Point()) <= eps {
				return []Point{p}
			}
			return nil
		}
		if onShape(t, p, eps) {
			return []Point{p}
		}
		return nil
	case s.Kind.LineLike() && t.Kind.LineLike():
		return lineLine(s, t, eps)
	case s.Kind.LineLike():
		return lineCircle(s, t, eps)
	default:
		return circleCircle(s, t, eps)
	}
}

func rank(k Kind) int {
	switch {
	case k == KindPoint:
		return 0
	case k.LineLike():
		return 1
	case k == KindCircle:
		return 2
	default:
		return 3
	}
}

// param returns p's position along s's defining direction, with the first
// point at 0 and the second at 1. p is assumed collinear.
func param(s Shape, p Point) float64 {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	n := dx*dx + dy*dy
	if n == 0 {
		return 0
	}

	return ((p.X-s.X1)*dx + (p.Y-s.Y1)*dy) / n
}

// inExtent reports whether a collinear p lies on the covered part of s.
func inExtent(s Shape, p Point, eps float64) bool {
	u := param(s, p)
	switch s.Kind {
	case KindSegment:
		return u >= -eps && u <= 1+eps
	case KindRay:
		return u >= -eps
	case KindComplementaryRay:
		return u <= eps
	default:
		return true
	}
}

func onShape(s Shape, p Point, eps float64) bool {
	if s.Kind == KindCircle {
		return math.Abs(Distance(s.Point(), p)-s.R) <= eps*math.Max(1, s.R)
	}
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	n := math.Hypot(dx, dy)
	if n == 0 {
		return false
	}
	if math.Abs((p.X-s.X1)*dy-(p.Y-s.Y1)*dx)/n > eps*math.Max(1, n) {
		return false
	}

	return inExtent(s, p, eps)
}

func lineLine(s, t Shape, eps float64) []Point {
	d1x, d1y := s.X2-s.X1, s.Y2-s.Y1
	d2x, d2y := t.X2-t.X1, t.Y2-t.Y1
	den := d1x*d2y - d1y*d2x
	if math.Abs(den) <= eps*math.Hypot(d1x, d1y)*math.Hypot(d2x, d2y) {
		return nil
	}
	u := ((t.X1-s.X1)*d2y - (t.Y1-s.Y1)*d2x) / den
	p := Point{s.X1 + u*d1x, s.Y1 + u*d1y}
	if !inExtent(s, p, eps) || !inExtent(t, p, eps) {
		return nil
	}

	return []Point{p}
}

func lineCircle(s, c Shape, eps float64) []Point {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	n := dx*dx + dy*dy
	if n == 0 {
		return nil
	}
	// 1. Foot of the perpendicular from the centre
	u := ((c.X1-s.X1)*dx + (c.Y1-s.Y1)*dy) / n
	foot := Point{s.X1 + u*dx, s.Y1 + u*dy}
	h := Distance(foot, c.Point())
	tol := eps * math.Max(1, c.R)
	if h > c.R+tol {
		return nil
	}
	var cand []Point
	if math.Abs(h-c.R) <= tol {
		cand = []Point{foot}
	} else {
		// 2. Half-chord along the unit direction
		k := math.Sqrt(c.R*c.R-h*h) / math.Sqrt(n)
		cand = []Point{{foot.X - k*dx, foot.Y - k*dy}, {foot.X + k*dx, foot.Y + k*dy}}
	}
	// 3. Keep what lies on the shape, nearest to its first point first
	var out []Point
	for _, p := range cand {
		if inExtent(s, p, eps) {
			out = append(out, p)
		}
	}
	origin := s.Point()
	sort.SliceStable(out, func(i, j int) bool {
		return Distance(origin, out[i]) < Distance(origin, out[j])
	})

	return out
}

func circleCircle(c1, c2 Shape, eps float64) []Point {
	d := Distance(c1.Point(), c2.Point())
	tol := eps * math.Max(1, math.Max(c1.R, c2.R))
	if d <= tol {
		return nil
	}
	if d > c1.R+c2.R+tol || d < math.Abs(c1.R-c2.R)-tol {
		return nil
	}
	a := (d*d + c1.R*c1.R - c2.R*c2.R) / (2 * d)
	vx, vy := (c2.X1-c1.X1)/d, (c2.Y1-c1.Y1)/d
	mid := Point{c1.X1 + a*vx, c1.Y1 + a*vy}
	hh := c1.R*c1.R - a*a
	if hh <= tol*tol || math.Abs(d-(c1.R+c2.R)) <= tol || math.Abs(d-math.Abs(c1.R-c2.R)) <= tol {
		return []Point{mid}
	}
	h := math.Sqrt(hh)

	return []Point{
		{mid.X + h*vy, mid.Y - h*vx},
		{mid.X - h*vy, mid.Y + h*vx},
	}
}
