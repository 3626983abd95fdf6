// SPDX-License-Identifier: MIT

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/grace/geometry"
)

// MarkAndCollectAffected lists, in a valid recompute order, every op that
// depends on point p, Measure ops last.
func (g *Graph) MarkAndCollectAffected(p ShapeID) (Plan, error) {
	// 1. Validate input
	if !g.hasShape(p) {
		return Plan{}, fmt.Errorf("%w: %d", ErrUnknownShape, p)
	}
	if !g.IsFree(p) {
		return Plan{}, fmt.Errorf("%w: %d", ErrNotFree, p)
	}

	// 2. Mark p's transitive offspring, setting measures aside
	var measures []OpID
	g.markFrom(p, &measures)

	// 3. Creation order is topological; keep the marked ops
	plan := Plan{Point: p}
	for i := range g.ops {
		op := &g.ops[i]
		switch {
		case op.mark && op.Kind == OpMeasure:
			// appended in step 4
		case op.mark:
			plan.Affected = append(plan.Affected, OpID(i))
			op.mark = false
		case !op.Successful:
			plan.PreexistingFailure = true
		}
	}

	// 4. Measures go last
	for _, m := range measures {
		plan.Affected = append(plan.Affected, m)
		g.ops[m].mark = false
	}

	return plan, nil
}

// markFrom marks every op reachable from s through Offspring edges.
func (g *Graph) markFrom(s ShapeID, measures *[]OpID) {
	for _, o := range g.shapes[s].Offspring {
		op := &g.ops[o]
		if op.mark {
			continue
		}
		op.mark = true
		if op.Kind == OpMeasure {
			*measures = append(*measures, o)
		}
		for _, c := range op.Children {
			g.markFrom(c, measures)
		}
	}
}

// Apply moves plan.Point to (x, y) and recomputes every affected op in
// order. It reports whether the whole figure is consistent afterwards.
func (g *Graph) Apply(plan Plan, x, y float64) (bool, error) {
	if !g.IsFree(plan.Point) {
		return false, fmt.Errorf("%w: %d", ErrNotFree, plan.Point)
	}
	g.shapes[plan.Point].Geometry = geometry.NewPoint(x, y)

	ok := true
	for _, o := range plan.Affected {
		if err := g.Recompute(o); err != nil {
			return false, err
		}
		if !g.ops[o].Successful {
			ok = false
		}
	}

	return ok && !plan.PreexistingFailure, nil
}

// Drag is MarkAndCollectAffected followed by Apply.
func (g *Graph) Drag(p ShapeID, x, y float64) (bool, error) {
	plan, err := g.MarkAndCollectAffected(p)
	if err != nil {
		return false, err
	}

	return g.Apply(plan, x, y)
}

// Move sets free point p to (x, y) without recomputing anything.
func (g *Graph) Move(p ShapeID, x, y float64) error {
	if !g.IsFree(p) {
		if !g.hasShape(p) {
			return fmt.Errorf("%w: %d", ErrUnknownShape, p)
		}
		return fmt.Errorf("%w: %d", ErrNotFree, p)
	}
	g.shapes[p].Geometry = geometry.NewPoint(x, y)

	return nil
}

// Successful reports whether every op last recomputed successfully.
func (g *Graph) Successful() bool {
	for i := range g.ops {
		if !g.ops[i].Successful {
			return false
		}
	}

	return true
}
