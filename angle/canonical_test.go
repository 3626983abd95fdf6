package angle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/grace/angle"
	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/nullspace"
	"github.com/katalvlaran/grace/poset"
)

const (
	O constraint.PointID = iota + 1
	A
	B
	X
	Y
)

type env struct {
	reg   *constraint.Registry
	po    *poset.Poset
	canon *angle.Canonicalizer
	basis *nullspace.Basis
}

func newEnv() *env {
	e := &env{reg: constraint.NewRegistry(nil), po: poset.New()}
	e.canon = angle.New(e.reg, e.po)
	e.basis = nullspace.New(nullspace.WithCanonicalizer(e.canon))

	return e
}

// segment O–A with B placed between them
func (e *env) segmentOBA(t *testing.T) {
	a := e.po.MakeAnchor(O, A, poset.Segment)
	b := e.po.NewNode(B)
	e.po.Place(a, b)
	for _, c := range e.po.Finalize(b, e.reg) {
		_, err := e.basis.Prove(c)
		require.NoError(t, err)
	}
}

func TestReversedAngleIsTautology(t *testing.T) {
	e := newEnv()
	c := constraint.New().
		Add(e.reg.Angle(A, O, B), 1).
		Add(e.reg.Angle(B, O, A), -1)
	assert.True(t, e.basis.Proven(c), "no prior Prove needed")
}

func TestPointsOnOneRayShareAClass(t *testing.T) {
	e := newEnv()
	e.segmentOBA(t)

	ax := e.reg.Angle(A, O, X)
	bx := e.reg.Angle(B, O, X)
	require.NotEqual(t, ax, bx)
	assert.Equal(t, e.canon.Canonical(ax), e.canon.Canonical(bx))
	assert.Equal(t, ax, e.canon.Canonical(bx), "first variable is the representative")

	same := constraint.New().Add(ax, 1).Add(bx, -1)
	assert.True(t, e.basis.Proven(same))
}

func TestCrosswiseMatch(t *testing.T) {
	e := newEnv()
	e.segmentOBA(t)
	ax := e.reg.Angle(A, O, X)
	e.canon.Canonical(ax)

	// Y joins the fresh chain O→X that the first fold created
	_, r2, ok := e.canon.Rays(ax)
	require.True(t, ok)
	y := e.po.NewNode(Y)
	e.po.Link(r2.Node, y)
	e.po.SetNew(y, false)

	assert.Equal(t, ax, e.canon.Canonical(e.reg.Angle(Y, O, B)))
}

func TestDistinctAnglesStayDistinct(t *testing.T) {
	e := newEnv()
	e.segmentOBA(t)
	ax := e.reg.Angle(A, O, X)
	ay := e.reg.Angle(A, O, Y)
	assert.NotEqual(t, e.canon.Canonical(ax), e.canon.Canonical(ay))
	assert.Equal(t, e.reg.Distance(O, A), e.canon.Canonical(e.reg.Distance(O, A)))
	assert.Equal(t, constraint.Pi, e.canon.Canonical(constraint.Pi))
}

func TestSnapshotRestore(t *testing.T) {
	e := newEnv()
	ps := e.po.Snapshot()
	cs := e.canon.Snapshot()

	ax := e.reg.Angle(A, O, X)
	e.canon.Canonical(ax)
	require.Equal(t, 1, e.canon.Len())
	require.Greater(t, e.po.Len(), 0)

	e.po.Restore(ps)
	e.canon.Restore(cs)
	assert.Zero(t, e.canon.Len())
	assert.Zero(t, e.po.Len())
	assert.Equal(t, ax, e.canon.Canonical(ax))
}
