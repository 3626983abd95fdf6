// SPDX-License-Identifier: MIT

package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/geometry"
)

// twoCircles builds circles about A and C that meet in two points X, Y,
// plus an unrelated segment EF with a distance measurement.
type twoCircles struct {
	g                   *depgraph.Graph
	a, b, c, d, e, f    depgraph.ShapeID
	x, y, axDist, efLen depgraph.ShapeID
	meet, seg           depgraph.OpID
}

func newTwoCircles(t *testing.T) twoCircles {
	r := require.New(t)
	var tc twoCircles
	g := depgraph.New()
	tc.g = g
	tc.a = g.AddFree("A", 0, 0)
	tc.b = g.AddFree("B", 1, 0)
	tc.c = g.AddFree("C", 1.5, 0)
	tc.d = g.AddFree("D", 2.5, 0)
	tc.e = g.AddFree("E", 5, 5)
	tc.f = g.AddFree("F", 6, 5)

	c1, _, err := g.AddCircle(tc.a, tc.b, "c1")
	r.NoError(err)
	c2, _, err := g.AddCircle(tc.c, tc.d, "c2")
	r.NoError(err)
	pts, meet, err := g.AddIntersection(c1, c2, []string{"X", "Y"})
	r.NoError(err)
	r.Len(pts, 2)
	tc.x, tc.y, tc.meet = pts[0], pts[1], meet

	_, tc.seg, err = g.AddLineLike(depgraph.OpSegment, tc.e, tc.f, "EF")
	r.NoError(err)
	tc.axDist, err = g.MeasureDistance(tc.a, tc.x)
	r.NoError(err)
	tc.efLen, err = g.MeasureDistance(tc.e, tc.f)
	r.NoError(err)

	return tc
}

func TestConstructorsAndAccessors(t *testing.T) {
	r := require.New(t)
	tc := newTwoCircles(t)
	g := tc.g

	r.True(g.IsFree(tc.a))
	r.False(g.IsFree(tc.x))
	r.True(g.IsPoint(tc.x))
	r.Equal("X", g.Label(tc.x))

	x := g.Geometry(tc.x).Point()
	r.InDelta(1, geometry.Distance(geometry.Point{}, x), 1e-9)

	v, ok, err := g.Value(tc.efLen)
	r.NoError(err)
	r.True(ok)
	r.InDelta(1, v, 1e-12)

	// Reversed request shares the node.
	again, err := g.MeasureDistance(tc.f, tc.e)
	r.NoError(err)
	r.Equal(tc.efLen, again)

	_, _, err = g.AddCircle(tc.a, tc.seg2Shape(t), "bad")
	r.ErrorIs(err, depgraph.ErrNotPoint)
	_, err = g.Shape(999)
	r.ErrorIs(err, depgraph.ErrUnknownShape)
	_, err = g.Op(999)
	r.ErrorIs(err, depgraph.ErrUnknownOp)
	r.NoError(g.Validate())
}

// seg2Shape returns the segment EF's shape handle.
func (tc twoCircles) seg2Shape(t *testing.T) depgraph.ShapeID {
	op, err := tc.g.Op(tc.seg)
	require.NoError(t, err)

	return op.Children[0]
}

func TestEmptyIntersection(t *testing.T) {
	r := require.New(t)
	g := depgraph.New()
	a := g.AddFree("A", 0, 0)
	b := g.AddFree("B", 1, 0)
	c := g.AddFree("C", 10, 0)
	d := g.AddFree("D", 11, 0)
	c1, _, err := g.AddCircle(a, b, "")
	r.NoError(err)
	c2, _, err := g.AddCircle(c, d, "")
	r.NoError(err)

	before := g.Checkpoint()
	_, _, err = g.AddIntersection(c1, c2, nil)
	r.ErrorIs(err, depgraph.ErrEmptyIntersection)
	r.Equal(before, g.Checkpoint())
}

func TestMarkAndCollectAffectedOrder(t *testing.T) {
	r := require.New(t)
	tc := newTwoCircles(t)

	plan, err := tc.g.MarkAndCollectAffected(tc.c)
	r.NoError(err)
	r.False(plan.PreexistingFailure)
	r.Len(plan.Affected, 3)

	kinds := make([]depgraph.OpKind, len(plan.Affected))
	for i, o := range plan.Affected {
		op, err := tc.g.Op(o)
		r.NoError(err)
		kinds[i] = op.Kind
	}
	r.Equal([]depgraph.OpKind{depgraph.OpCircle, depgraph.OpIntersection, depgraph.OpMeasure}, kinds)

	// Marks are cleared: a second pass sees the same plan.
	again, err := tc.g.MarkAndCollectAffected(tc.c)
	r.NoError(err)
	r.Equal(plan, again)

	_, err = tc.g.MarkAndCollectAffected(tc.x)
	r.ErrorIs(err, depgraph.ErrNotFree)
	_, err = tc.g.MarkAndCollectAffected(42)
	r.ErrorIs(err, depgraph.ErrUnknownShape)
}

func TestDragPartialFailureContainment(t *testing.T) {
	r := require.New(t)
	tc := newTwoCircles(t)
	g := tc.g

	ok, err := g.Drag(tc.c, 10, 0)
	r.NoError(err)
	r.False(ok)

	meet, err := g.Op(tc.meet)
	r.NoError(err)
	r.False(meet.Successful)
	x, err := g.Shape(tc.x)
	r.NoError(err)
	r.False(x.Valid)
	_, valid, err := g.Value(tc.axDist)
	r.NoError(err)
	r.False(valid)

	// The unrelated branch is untouched.
	seg, err := g.Op(tc.seg)
	r.NoError(err)
	r.True(seg.Successful)
	_, valid, err = g.Value(tc.efLen)
	r.NoError(err)
	r.True(valid)

	// Dragging an unrelated point reports the existing failure.
	ok, err = g.Drag(tc.e, 5, 6)
	r.NoError(err)
	r.False(ok)

	// Dragging back restores everything.
	ok, err = g.Drag(tc.c, 1.5, 0)
	r.NoError(err)
	r.True(ok)
	r.True(g.Successful())
	_, valid, err = g.Value(tc.axDist)
	r.NoError(err)
	r.True(valid)
}

func TestPreexistingFailureScansEveryOp(t *testing.T) {
	r := require.New(t)
	tc := newTwoCircles(t)
	ok, err := tc.g.Drag(tc.c, 10, 0)
	r.NoError(err)
	r.False(ok)

	// The failed intersection is downstream of A: not preexisting, and the
	// measure on X is listed once, last.
	plan, err := tc.g.MarkAndCollectAffected(tc.a)
	r.NoError(err)
	r.False(plan.PreexistingFailure)
	r.Len(plan.Affected, 3)
	last, err := tc.g.Op(plan.Affected[2])
	r.NoError(err)
	r.Equal(depgraph.OpMeasure, last.Kind)

	// From E every op is scanned, measures included, and the failure shows.
	plan, err = tc.g.MarkAndCollectAffected(tc.e)
	r.NoError(err)
	r.True(plan.PreexistingFailure)
	r.Len(plan.Affected, 2)
	seen := make(map[depgraph.OpID]bool)
	for _, o := range plan.Affected {
		r.False(seen[o], "op %d listed twice", o)
		seen[o] = true
	}
}

func TestMoveDoesNotRecompute(t *testing.T) {
	r := require.New(t)
	tc := newTwoCircles(t)

	r.NoError(tc.g.Move(tc.f, 8, 5))
	v, _, err := tc.g.Value(tc.efLen)
	r.NoError(err)
	r.InDelta(1, v, 1e-12)
	r.ErrorIs(tc.g.Move(tc.x, 0, 0), depgraph.ErrNotFree)
	r.ErrorIs(tc.g.Move(99, 0, 0), depgraph.ErrUnknownShape)
}

func TestRollback(t *testing.T) {
	r := require.New(t)
	g := depgraph.New()
	a := g.AddFree("A", 0, 0)
	b := g.AddFree("B", 3, 4)
	cp := g.Checkpoint()

	_, _, err := g.AddLineLike(depgraph.OpLine, a, b, "l")
	r.NoError(err)
	m, err := g.MeasureDistance(a, b)
	r.NoError(err)
	r.Equal(4, g.NumShapes())

	r.NoError(g.Rollback(cp))
	r.Equal(2, g.NumShapes())
	r.Equal(2, g.NumOps())
	sa, err := g.Shape(a)
	r.NoError(err)
	r.Empty(sa.Offspring)
	r.NoError(g.Validate())

	// The measurement is created afresh after rollback.
	m2, err := g.MeasureDistance(a, b)
	r.NoError(err)
	r.Equal(m, m2+1)
	v, _, err := g.Value(m2)
	r.NoError(err)
	r.InDelta(5, v, 1e-12)

	r.ErrorIs(g.Rollback(depgraph.Checkpoint{Shapes: 50}), depgraph.ErrBadCheckpoint)
}

// doubler moves its single point input to twice its coordinates.
type doubler struct{}

func (doubler) Evaluate(_ depgraph.Intersector, in []geometry.Shape) ([]geometry.Shape, error) {
	p := in[0].Point()
	return []geometry.Shape{geometry.NewPoint(2*p.X, 2*p.Y)}, nil
}

func TestConstructionRecompute(t *testing.T) {
	r := require.New(t)
	g := depgraph.New()
	a := g.AddFree("A", 1, 1)
	out, op, err := g.AddConstruction("Double", doubler{}, []depgraph.ShapeID{a},
		[]geometry.Shape{geometry.NewPoint(2, 2)}, []string{"D"})
	r.NoError(err)
	r.Len(out, 1)

	ok, err := g.Drag(a, 3, -1)
	r.NoError(err)
	r.True(ok)
	r.Equal(geometry.Point{X: 6, Y: -2}, g.Geometry(out[0]).Point())

	o, err := g.Op(op)
	r.NoError(err)
	r.Equal("Double", o.Name)
	r.Equal(depgraph.OpConstruction, o.Kind)
}
