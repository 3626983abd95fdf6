// SPDX-License-Identifier: MIT

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/grace/geometry"
)

// Recompute re-derives the children of op o from its parents and updates
// its Successful flag and its children's Valid flags.
func (g *Graph) Recompute(o OpID) error {
	if !g.hasOp(o) {
		return fmt.Errorf("%w: %d", ErrUnknownOp, o)
	}
	op := &g.ops[o]
	switch op.Kind {
	case OpFree, OpForce:
		op.Successful = true
	case OpSegment, OpRay, OpComplementaryRay, OpLine, OpPerpendicularBisector:
		g.recomputeLine(op)
	case OpCircle:
		g.recomputeCircle(op)
	case OpIntersection:
		g.recomputeIntersection(op)
	case OpConstruction:
		g.recomputeConstruction(op)
	case OpMeasure:
		g.recomputeMeasure(op)
	}

	return nil
}

// validPoints reports whether every parent is a valid point.
func (g *Graph) validPoints(op *Op) bool {
	for _, p := range op.Parents {
		sh := g.shapes[p]
		if !sh.Valid || sh.Geometry.Kind != geometry.KindPoint {
			return false
		}
	}

	return true
}

func (g *Graph) fail(op *Op) {
	op.Successful = false
	for _, c := range op.Children {
		g.shapes[c].Valid = false
	}
}

func (g *Graph) recomputeLine(op *Op) {
	if len(op.Parents) != 2 || !g.validPoints(op) {
		g.fail(op)
		return
	}
	a := g.shapes[op.Parents[0]].Geometry.Point()
	b := g.shapes[op.Parents[1]].Geometry.Point()
	c := op.Children[0]
	g.shapes[c].Geometry = geometry.Through(lineKinds[op.Kind], a, b)
	g.shapes[c].Valid = true
	op.Successful = true
}

func (g *Graph) recomputeCircle(op *Op) {
	if len(op.Parents) != 2 || !g.validPoints(op) {
		g.fail(op)
		return
	}
	c := op.Children[0]
	g.shapes[c].Geometry = geometry.NewCircle(
		g.shapes[op.Parents[0]].Geometry.Point(),
		g.shapes[op.Parents[1]].Geometry.Point(),
	)
	g.shapes[c].Valid = true
	op.Successful = true
}

func (g *Graph) recomputeIntersection(op *Op) {
	a, b := g.shapes[op.Parents[0]], g.shapes[op.Parents[1]]
	if !a.Valid || !b.Valid {
		g.fail(op)
		return
	}
	pts := g.ix.Intersect(a.Geometry, b.Geometry)
	op.Successful = len(pts) == len(op.Children)
	for i, c := range op.Children {
		if i < len(pts) {
			g.shapes[c].Geometry = geometry.NewPoint(pts[i].X, pts[i].Y)
			g.shapes[c].Valid = true
		} else {
			g.shapes[c].Valid = false
		}
	}
}

func (g *Graph) recomputeConstruction(op *Op) {
	inputs := make([]geometry.Shape, len(op.Parents))
	for i, p := range op.Parents {
		if !g.shapes[p].Valid {
			g.fail(op)
			return
		}
		inputs[i] = g.shapes[p].Geometry
	}
	if op.Evaluator == nil {
		g.fail(op)
		return
	}
	out, err := op.Evaluator.Evaluate(g.ix, inputs)
	if err != nil || len(out) != len(op.Children) {
		g.fail(op)
		return
	}
	for i, c := range op.Children {
		g.shapes[c].Geometry = out[i]
		g.shapes[c].Valid = true
	}
	op.Successful = true
}

func (g *Graph) recomputeMeasure(op *Op) {
	c := op.Children[0]
	if !g.validPoints(op) {
		g.shapes[c].Valid = false
		op.Successful = true
		return
	}
	pt := func(i int) geometry.Point { return g.shapes[op.Parents[i]].Geometry.Point() }
	var v float64
	if len(op.Parents) == 3 {
		v = geometry.Angle(pt(0), pt(1), pt(2))
	} else {
		v = geometry.Distance(pt(0), pt(1))
	}
	g.shapes[c].Geometry = geometry.NewMeasurement(v)
	g.shapes[c].Valid = true
	op.Successful = true
}
