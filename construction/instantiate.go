// SPDX-License-Identifier: MIT

package construction

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/figure"
	"github.com/katalvlaran/grace/geometry"
)

// Instantiate applies t to inputs in f. names label the outputs in order;
// missing names fall back to the template's own. It returns the output
// shapes. On error f is left as it was.
func Instantiate(f *figure.Figure, t *Template, inputs []depgraph.ShapeID, names []string, opts ...Option) ([]depgraph.ShapeID, error) {
	o := options{prefix: true}
	for _, opt := range opts {
		opt(&o)
	}
	g := f.Graph()
	log := f.Logger().With(zap.String("construction", t.Name))

	// 1. Arity and input kinds
	if n := t.NumInputs(); len(inputs) != n {
		return nil, fail(t, -1, fmt.Errorf("%w: want %d, got %d", ErrArity, n, len(inputs)))
	}
	geos := make([]geometry.Shape, len(inputs))
	for i, in := range inputs {
		if !g.IsPoint(in) {
			return nil, fail(t, i, fmt.Errorf("%w: shape %d is not a point", ErrBadInputs, in))
		}
		geos[i] = g.Geometry(in)
	}
	x, err := newExpansion(t, geos)
	if err != nil {
		return nil, err
	}
	id := func(j int) depgraph.ShapeID { return inputs[j] }

	// Checking assumptions interns variables and may grow the poset
	cp := f.Checkpoint()
	undo := func(err error) ([]depgraph.ShapeID, error) {
		if rerr := f.Rollback(cp); rerr != nil {
			return nil, rerr
		}
		log.Debug("instantiation rolled back", zap.Error(err))
		return nil, err
	}

	// 2. Assumptions must already follow
	for _, cr := range t.Assume {
		fc, err := x.flatten(x.nIn, cr)
		if err != nil {
			return undo(err)
		}
		c := build(f.Vars(), fc, id)
		if !c.IsTautology() && !f.Follows(c) {
			return undo(fail(t, -1, fmt.Errorf("%w: %s", ErrAssumptionNotMet, f.Format(c))))
		}
	}

	// 3. Geometry
	if err := x.run(g.Intersector(), ""); err != nil {
		return undo(err)
	}

	// 4. One op for everything produced
	out, err := apply(f, t, x, inputs, names, o)
	if err != nil {
		return undo(err)
	}
	log.Debug("instantiated", zap.Int("produced", len(x.slots)-x.nIn), zap.Int("outputs", len(out)))

	return out, nil
}

// apply performs steps 4 to 7 of Instantiate.
func apply(f *figure.Figure, t *Template, x *expansion, inputs []depgraph.ShapeID, names []string, o options) ([]depgraph.ShapeID, error) {
	outputs := make(map[int]int, len(x.outputs))
	for i, s := range x.outputs {
		outputs[s] = i
	}
	labels := make([]string, 0, len(x.slots)-x.nIn)
	for s := x.nIn; s < len(x.slots); s++ {
		label := x.slots[s].label
		if i, ok := outputs[s]; ok {
			if i < len(names) && names[i] != "" {
				label = names[i]
			}
		} else if o.prefix {
			label = t.Name + "." + label
		}
		labels = append(labels, label)
	}
	ids, _, err := f.Graph().AddConstruction(t.Name, t, inputs, x.produced(), labels)
	if err != nil {
		return nil, err
	}
	id := func(j int) depgraph.ShapeID {
		if j < x.nIn {
			return inputs[j]
		}
		return ids[j-x.nIn]
	}

	// 5. Poset structures and forced facts, in rule order
	var conclusions []*constraint.Constraint
	for _, ev := range x.events {
		switch ev.kind {
		case evTrack:
			if err := f.Track(id(ev.item), ev.shape, id(ev.def[0]), id(ev.def[1])); err != nil {
				return nil, fail(t, ev.step, err)
			}
		case evMeet:
			pts := make([]depgraph.ShapeID, len(ev.points))
			for i, p := range ev.points {
				pts[i] = id(p)
			}
			f.Place(id(ev.meet[0]), pts)
			f.Place(id(ev.meet[1]), pts)
		case evForce:
			if _, err := f.Prove(build(f.Vars(), ev.c, id)); err != nil {
				return nil, fail(t, ev.step, err)
			}
		case evAssume:
			c := build(f.Vars(), ev.c, id)
			if !c.IsTautology() && !f.Follows(c) {
				return nil, fail(t, ev.step, fmt.Errorf("%w: %s", ErrAssumptionNotMet, f.Format(c)))
			}
		case evConclude:
			c := build(f.Vars(), ev.c, id)
			if ev.depth > 0 {
				if err := conclude(f, c); err != nil {
					return nil, fail(t, ev.step, err)
				}
				continue
			}
			conclusions = append(conclusions, c)
		}
	}

	// 6. Conclusions
	for _, c := range conclusions {
		if err := conclude(f, c); err != nil {
			return nil, fail(t, len(t.Rules)-1, err)
		}
	}

	// 7. Intermediate points leave the poset before the outputs settle,
	// so no fact mentions them
	for s := x.nIn; s < len(x.slots); s++ {
		if _, ok := outputs[s]; ok || x.slots[s].geo.Kind != geometry.KindPoint {
			continue
		}
		f.Teardown(id(s))
	}
	res := make([]depgraph.ShapeID, len(x.outputs))
	for i, s := range x.outputs {
		res[i] = id(s)
		if x.slots[s].geo.Kind == geometry.KindPoint {
			if _, err := f.Settle(res[i]); err != nil {
				return nil, fail(t, len(t.Rules)-1, err)
			}
		}
	}

	return res, nil
}

// conclude records c unless it already follows.
func conclude(f *figure.Figure, c *constraint.Constraint) error {
	if c.IsTautology() || f.Follows(c) {
		return nil
	}
	_, err := f.Prove(c)

	return err
}

// build turns a flat constraint into variables of vars.
func build(vars *constraint.Registry, fc flatConstraint, id func(int) depgraph.ShapeID) *constraint.Constraint {
	c := constraint.New()
	p := func(i int) constraint.PointID { return figure.Point(id(i)) }
	for _, t := range fc {
		switch t.kind {
		case MeasureDistance:
			c.Add(vars.Distance(p(t.pts[0]), p(t.pts[1])), t.weight)
		case MeasureAngle:
			c.Add(vars.Angle(p(t.pts[0]), p(t.pts[1]), p(t.pts[2])), t.weight)
		default:
			c.Add(constraint.Pi, t.weight)
		}
	}

	return c
}
