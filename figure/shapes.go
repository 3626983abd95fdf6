// SPDX-License-Identifier: MIT

package figure

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/geometry"
	"github.com/katalvlaran/grace/poset"
)

// extents maps line-like kinds to the part of the line they cover.
var extents = map[geometry.Kind]poset.Extent{
	geometry.KindSegment:              poset.Segment,
	geometry.KindRay:                  poset.Ray,
	geometry.KindComplementaryRay:     poset.ComplementaryRay,
	geometry.KindLine:                 poset.Unordered,
	geometry.KindPerpendicularBisector: poset.Unordered,
}

// AddPoint adds a free point.
func (f *Figure) AddPoint(label string, x, y float64) depgraph.ShapeID {
	return f.g.AddFree(label, x, y)
}

// AddSegment adds segment ab.
func (f *Figure) AddSegment(a, b depgraph.ShapeID, label string) (depgraph.ShapeID, error) {
	return f.addLine(geometry.KindSegment, a, b, label)
}

// AddRay adds the ray from a through b.
func (f *Figure) AddRay(a, b depgraph.ShapeID, label string) (depgraph.ShapeID, error) {
	return f.addLine(geometry.KindRay, a, b, label)
}

// AddComplementaryRay adds the ray from a away from b.
func (f *Figure) AddComplementaryRay(a, b depgraph.ShapeID, label string) (depgraph.ShapeID, error) {
	return f.addLine(geometry.KindComplementaryRay, a, b, label)
}

// AddLine adds the line through a and b.
func (f *Figure) AddLine(a, b depgraph.ShapeID, label string) (depgraph.ShapeID, error) {
	return f.addLine(geometry.KindLine, a, b, label)
}

// AddPerpendicularBisector adds the perpendicular bisector of ab.
func (f *Figure) AddPerpendicularBisector(a, b depgraph.ShapeID, label string) (depgraph.ShapeID, error) {
	return f.addLine(geometry.KindPerpendicularBisector, a, b, label)
}

// AddCircle adds the circle about centre through on.
func (f *Figure) AddCircle(centre, on depgraph.ShapeID, label string) (depgraph.ShapeID, error) {
	s, _, err := f.g.AddCircle(centre, on, label)
	if err != nil {
		return 0, err
	}
	if err := f.Track(s, geometry.KindCircle, centre, on); err != nil {
		return 0, err
	}

	return s, nil
}

func (f *Figure) addLine(k geometry.Kind, a, b depgraph.ShapeID, label string) (depgraph.ShapeID, error) {
	op, _ := depgraph.LineOp(k)
	s, _, err := f.g.AddLineLike(op, a, b, label)
	if err != nil {
		return 0, err
	}
	if err := f.Track(s, k, a, b); err != nil {
		return 0, err
	}

	return s, nil
}

// Intersect adds the points where a and b meet, labelled in order, and
// derives what the figure learns from them. It returns the new points.
func (f *Figure) Intersect(a, b depgraph.ShapeID, labels ...string) ([]depgraph.ShapeID, error) {
	pts, _, err := f.g.AddIntersection(a, b, labels)
	if err != nil {
		return nil, err
	}
	f.Place(a, pts)
	f.Place(b, pts)
	for _, p := range pts {
		if _, err := f.Settle(p); err != nil {
			return pts, err
		}
	}

	return pts, nil
}

// Track registers shape s of kind k drawn from a and b: an anchor for
// ordered line-like shapes, the defining points for circles and
// perpendicular bisectors.
func (f *Figure) Track(s depgraph.ShapeID, k geometry.Kind, a, b depgraph.ShapeID) error {
	switch k {
	case geometry.KindCircle:
		f.circles[s] = circle{centre: a, on: b}
	case geometry.KindPerpendicularBisector:
		f.bisectors[s] = [2]depgraph.ShapeID{a, b}
	case geometry.KindSegment, geometry.KindRay, geometry.KindComplementaryRay:
		f.anchors[s] = f.po.MakeAnchor(Point(a), Point(b), extents[k])
	case geometry.KindLine:
	default:
		return fmt.Errorf("%w: %s", ErrNotLineLike, k)
	}

	return nil
}

// Place records that pts lie on shape s. On ordered line-like shapes each
// point gets a new poset node linked in by the shape's extent; two points
// are ordered by their distance from the shape's first point.
func (f *Figure) Place(s depgraph.ShapeID, pts []depgraph.ShapeID) {
	for _, p := range pts {
		f.on[p] = append(f.on[p], s)
	}
	a, ok := f.anchors[s]
	if !ok || len(pts) == 0 {
		return
	}

	ordered := append([]depgraph.ShapeID(nil), pts...)
	origin := f.g.Geometry(s).Point()
	sort.SliceStable(ordered, func(i, j int) bool {
		return geometry.Distance(origin, f.g.Geometry(ordered[i]).Point()) <
			geometry.Distance(origin, f.g.Geometry(ordered[j]).Point())
	})
	switch len(ordered) {
	case 1:
		f.po.Place(a, f.po.NewNode(Point(ordered[0])))
	default:
		r := f.po.NewNode(Point(ordered[0]))
		t := f.po.NewNode(Point(ordered[1]))
		f.po.PlaceTwo(a, r, t)
	}
}

// Settle finalizes p's pending poset nodes and records the betweenness,
// radius and bisector facts p brings. It returns how many were new.
func (f *Figure) Settle(p depgraph.ShapeID) (int, error) {
	var cands []*constraint.Constraint
	// 1. Betweenness from every new node of p
	for _, n := range f.po.NodesOf(Point(p)) {
		node, err := f.po.Node(n)
		if err != nil {
			return 0, err
		}
		if node.New {
			cands = append(cands, f.po.Finalize(n, f.vars)...)
		}
	}
	// 2. Circles and bisectors through p
	for _, s := range f.on[p] {
		if c, ok := f.circles[s]; ok && c.centre != p && c.on != p {
			cands = append(cands, constraint.New().
				Add(f.vars.Distance(Point(c.centre), Point(p)), 1).
				Add(f.vars.Distance(Point(c.centre), Point(c.on)), -1))
		}
		if o, ok := f.bisectors[s]; ok {
			cands = append(cands, constraint.New().
				Add(f.vars.Distance(Point(o[0]), Point(p)), 1).
				Add(f.vars.Distance(Point(o[1]), Point(p)), -1))
		}
	}
	// 3. Keep the novel ones
	novel := 0
	for _, c := range cands {
		ok, err := f.derive(c)
		if err != nil {
			return novel, err
		}
		if ok {
			novel++
		}
	}
	f.log.Debug("point settled",
		zap.String("point", f.pointLabel(Point(p))),
		zap.Int("candidates", len(cands)),
		zap.Int("novel", novel),
	)

	return novel, nil
}

// Teardown removes p from the poset, keeping the order among its
// neighbours. Circles and perpendicular bisectors defined by p stop
// yielding facts.
func (f *Figure) Teardown(p depgraph.ShapeID) int {
	delete(f.on, p)
	for s, c := range f.circles {
		if c.centre == p || c.on == p {
			delete(f.circles, s)
		}
	}
	for s, o := range f.bisectors {
		if o[0] == p || o[1] == p {
			delete(f.bisectors, s)
		}
	}
	n := f.po.DeletePoint(Point(p))
	f.log.Debug("point torn down", zap.Int("point", int(p)), zap.Int("nodes", n))

	return n
}

// Drag moves free point p and recomputes geometry. It reports whether the
// whole figure is still consistent.
func (f *Figure) Drag(p depgraph.ShapeID, x, y float64) (bool, error) {
	plan, err := f.g.MarkAndCollectAffected(p)
	if err != nil {
		return false, err
	}
	ok, err := f.g.Apply(plan, x, y)
	if err != nil {
		return false, err
	}
	f.log.Debug("drag",
		zap.String("point", f.pointLabel(Point(p))),
		zap.Int("affected", len(plan.Affected)),
		zap.Bool("preexisting_failure", plan.PreexistingFailure),
		zap.Bool("ok", ok),
	)

	return ok, nil
}
