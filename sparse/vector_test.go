package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/grace/sparse"
)

// TestAdd_DropsCancelledTerms verifies that no zero coefficient survives.
func TestAdd_DropsCancelledTerms(t *testing.T) {
	var v sparse.Vector
	v.Add(1, 2)
	v.Add(2, 3)
	v.Add(3, -1)
	v.Add(2, -3)

	require.Equal(t, 2, v.Len())
	assert.False(t, v.Has(2))
	assert.Equal(t, []sparse.Var{1, 3}, v.Vars(), "order of surviving terms is kept")
	assert.Equal(t, int64(-1), v.Coef(3))

	v.Add(7, 0)
	assert.Equal(t, 2, v.Len(), "adding a zero weight is a no-op")
}

// TestDot covers overlap, disjoint and empty operands.
func TestDot(t *testing.T) {
	a := sparse.New(sparse.Term{Var: 1, Coef: 2}, sparse.Term{Var: 2, Coef: -1})
	b := sparse.New(sparse.Term{Var: 2, Coef: 4}, sparse.Term{Var: 3, Coef: 5}, sparse.Term{Var: 1, Coef: 1})

	assert.Equal(t, int64(2*1+(-1)*4), sparse.Dot(a, b))
	assert.Equal(t, sparse.Dot(a, b), sparse.Dot(b, a))
	assert.Zero(t, sparse.Dot(a, sparse.Unit(9)))
	assert.Zero(t, sparse.Dot(a, sparse.Vector{}))
}

// TestLinComb checks w1*a + w2*b including a cancelling term.
func TestLinComb(t *testing.T) {
	a := sparse.New(sparse.Term{Var: 1, Coef: 1}, sparse.Term{Var: 2, Coef: 1})
	b := sparse.New(sparse.Term{Var: 2, Coef: 2}, sparse.Term{Var: 3, Coef: 1})

	got := sparse.LinComb(2, a, -1, b)
	want := sparse.New(sparse.Term{Var: 1, Coef: 2}, sparse.Term{Var: 3, Coef: -1})
	assert.True(t, sparse.Equal(want, got), "got %v want %v", got, want)
	assert.False(t, got.Has(2))
}

// TestMergeAndClone ensures Clone is independent of the original.
func TestMergeAndClone(t *testing.T) {
	a := sparse.New(sparse.Term{Var: 1, Coef: 1})
	c := a.Clone()
	c.Merge(sparse.New(sparse.Term{Var: 1, Coef: 1}, sparse.Term{Var: 4, Coef: 2}), 3)

	assert.Equal(t, int64(1), a.Coef(1), "original untouched")
	assert.Equal(t, int64(4), c.Coef(1))
	assert.Equal(t, int64(6), c.Coef(4))
}

// TestContentAndReduce divides by the gcd exactly and keeps signs.
func TestContentAndReduce(t *testing.T) {
	v := sparse.New(sparse.Term{Var: 1, Coef: 6}, sparse.Term{Var: 2, Coef: -9}, sparse.Term{Var: 3, Coef: 12})
	assert.Equal(t, int64(3), sparse.Content(v))

	r := sparse.Reduce(v)
	assert.Equal(t, int64(2), r.Coef(1))
	assert.Equal(t, int64(-3), r.Coef(2))
	assert.Equal(t, int64(4), r.Coef(3))
	assert.Equal(t, int64(6), v.Coef(1), "Reduce does not mutate its argument")

	assert.Zero(t, sparse.Content(sparse.Vector{}))
}
