// SPDX-License-Identifier: MIT

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/grace/geometry"
)

// MeasureDistance returns the measurement shape for dist(a, b), creating
// it on first request. dist(b, a) shares the node.
func (g *Graph) MeasureDistance(a, b ShapeID) (ShapeID, error) {
	if b < a {
		a, b = b, a
	}

	return g.measure(measureKey{pts: [3]ShapeID{a, b, 0}}, a, b)
}

// MeasureAngle returns the measurement shape for angle(p1, apex, p2),
// creating it on first request. angle(p2, apex, p1) shares the node.
func (g *Graph) MeasureAngle(p1, apex, p2 ShapeID) (ShapeID, error) {
	k := measureKey{angle: true, pts: [3]ShapeID{p1, apex, p2}}
	if p2 < p1 {
		k.pts[0], k.pts[2] = p2, p1
	}

	return g.measure(k, p1, apex, p2)
}

func (g *Graph) measure(k measureKey, pts ...ShapeID) (ShapeID, error) {
	if s, ok := g.measures[k]; ok {
		return s, nil
	}
	if err := g.requirePoints(pts...); err != nil {
		return 0, err
	}
	op := g.newOp(OpMeasure, pts)
	s := g.newShape(op, "", geometry.NewMeasurement(0))
	g.measures[k] = s
	g.recomputeMeasure(&g.ops[op])

	return s, nil
}

// Value returns the current value of measurement s and whether it is valid.
func (g *Graph) Value(s ShapeID) (float64, bool, error) {
	if !g.hasShape(s) {
		return 0, false, fmt.Errorf("%w: %d", ErrUnknownShape, s)
	}
	sh := g.shapes[s]
	if sh.Geometry.Kind != geometry.KindMeasurement {
		return 0, false, fmt.Errorf("depgraph: shape %d is not a measurement", s)
	}

	return sh.Geometry.Value, sh.Valid, nil
}
