// SPDX-License-Identifier: MIT

package figure

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/grace/angle"
	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/nullspace"
	"github.com/katalvlaran/grace/poset"
	"github.com/katalvlaran/grace/sparse"
)

// New returns an empty figure.
func New(opts ...Option) *Figure {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	var gopts []depgraph.Option
	if o.Intersector != nil {
		gopts = append(gopts, depgraph.WithIntersector(o.Intersector))
	}

	f := &Figure{
		g:         depgraph.New(gopts...),
		po:        poset.New(),
		log:       o.Logger,
		anchors:   make(map[depgraph.ShapeID]poset.Anchor),
		circles:   make(map[depgraph.ShapeID]circle),
		bisectors: make(map[depgraph.ShapeID][2]depgraph.ShapeID),
		on:        make(map[depgraph.ShapeID][]depgraph.ShapeID),
		forced:    make(map[depgraph.OpID]*constraint.Constraint),
	}
	f.vars = constraint.NewRegistry(f.pointLabel)
	f.canon = angle.New(f.vars, f.po)
	f.basis = nullspace.New(
		nullspace.WithCanonicalizer(f.canon),
		nullspace.WithContentReduction(o.Reduce),
	)

	return f
}

// Graph exposes the dependency graph. Mutating it directly bypasses the
// figure's derivations.
func (f *Figure) Graph() *depgraph.Graph { return f.g }

// Vars exposes the variable registry.
func (f *Figure) Vars() *constraint.Registry { return f.vars }

// Logger returns the figure's logger.
func (f *Figure) Logger() *zap.Logger { return f.log }

// Point converts a shape handle to the identity used in variables.
func Point(s depgraph.ShapeID) constraint.PointID { return constraint.PointID(s) }

// Shape converts a variable's point identity back to its shape.
func Shape(p constraint.PointID) depgraph.ShapeID { return depgraph.ShapeID(p) }

func (f *Figure) pointLabel(p constraint.PointID) string {
	if l := f.g.Label(Shape(p)); l != "" {
		return l
	}

	return fmt.Sprintf("#%d", p)
}

// Name renders variable v.
func (f *Figure) Name(v sparse.Var) string { return f.vars.Name(v) }

// Format renders c with the figure's labels.
func (f *Figure) Format(c *constraint.Constraint) string { return c.Format(f.vars) }

// Distance returns the variable for dist(a, b) and adds its measurement.
func (f *Figure) Distance(a, b depgraph.ShapeID) (sparse.Var, error) {
	if _, err := f.g.MeasureDistance(a, b); err != nil {
		return 0, err
	}

	return f.vars.Distance(Point(a), Point(b)), nil
}

// Angle returns the variable for angle(p1, apex, p2) and adds its
// measurement.
func (f *Figure) Angle(p1, apex, p2 depgraph.ShapeID) (sparse.Var, error) {
	if _, err := f.g.MeasureAngle(p1, apex, p2); err != nil {
		return 0, err
	}

	return f.vars.Angle(Point(p1), Point(apex), Point(p2)), nil
}

// Facts returns a copy of the constraint log.
func (f *Figure) Facts() []Fact { return append([]Fact(nil), f.facts...) }

// Forced returns the constraint recorded by Force op o.
func (f *Figure) Forced(o depgraph.OpID) (*constraint.Constraint, bool) {
	c, ok := f.forced[o]
	return c, ok
}

// Rank returns the number of independent facts known so far.
func (f *Figure) Rank() int { return f.basis.Rank() }

// Basis renders the current nullspace rows.
func (f *Figure) Basis() string { return f.basis.Format(f.vars) }

// Poset exposes the point-order poset, for inspection.
func (f *Figure) Poset() *poset.Poset { return f.po }
