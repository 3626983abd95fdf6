package nullspace_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/nullspace"
	"github.com/katalvlaran/grace/sparse"
)

type BasisSuite struct {
	suite.Suite
	reg   *constraint.Registry
	basis *nullspace.Basis
}

func (s *BasisSuite) SetupTest() {
	s.reg = constraint.NewRegistry(nil)
	s.basis = nullspace.New()
}

// eq builds dist(a,b) = dist(c,d).
func (s *BasisSuite) eq(a, b, c, d constraint.PointID) *constraint.Constraint {
	return constraint.New().Add(s.reg.Distance(a, b), 1).Add(s.reg.Distance(c, d), -1)
}

func (s *BasisSuite) TestRedundancy() {
	require := require.New(s.T())
	const A, B, C, D = 1, 2, 3, 4

	implied, err := s.basis.Prove(s.eq(A, B, B, C))
	require.NoError(err)
	require.False(implied)
	implied, err = s.basis.Prove(s.eq(B, C, C, D))
	require.NoError(err)
	require.False(implied)

	require.True(s.basis.Proven(s.eq(A, B, C, D)), "transitivity follows without being recorded")
	require.False(s.basis.Proven(s.eq(A, B, A, C)), "unrelated equality does not follow")
}

func (s *BasisSuite) TestIdempotence() {
	require := require.New(s.T())
	c := s.eq(1, 2, 3, 4)

	first, err := s.basis.Prove(c)
	require.NoError(err)
	require.False(first)
	size := s.basis.Size()

	second, err := s.basis.Prove(c)
	require.NoError(err)
	require.True(second)
	require.Equal(size, s.basis.Size())
}

func (s *BasisSuite) TestPiInvalidity() {
	require := require.New(s.T())
	c := constraint.New().Add(constraint.Pi, 1)
	require.True(c.IsInvalid())

	_, err := s.basis.Prove(c)
	require.ErrorIs(err, nullspace.ErrInvalidConstraint)
	require.Zero(s.basis.Size(), "rejected before any variable is registered")
	require.False(s.basis.Proven(c))
}

func (s *BasisSuite) TestTautologyIsNoOp() {
	require := require.New(s.T())
	implied, err := s.basis.Prove(constraint.New())
	require.NoError(err)
	require.True(implied)
	require.Zero(s.basis.Size())
	require.True(s.basis.Proven(constraint.New()))
}

func (s *BasisSuite) TestUnseenVariableIsNotProven() {
	require := require.New(s.T())
	_, err := s.basis.Prove(s.eq(1, 2, 2, 3))
	require.NoError(err)
	require.False(s.basis.Proven(s.eq(1, 2, 5, 6)))
	require.Len(s.basis.Variables(), 2, "Proven registers nothing")
}

func (s *BasisSuite) TestSnapshotRestore() {
	require := require.New(s.T())
	_, _ = s.basis.Prove(s.eq(1, 2, 2, 3))
	c := s.eq(2, 3, 3, 4)
	before := s.basis.Proven(c)

	snap := s.basis.Snapshot()
	_, err := s.basis.Prove(c)
	require.NoError(err)
	require.True(s.basis.Proven(c))
	require.False(snap.Proven(c), "snapshot does not see later proofs")

	s.basis.Restore(snap)
	require.Equal(before, s.basis.Proven(c))
	require.Equal(snap.Size(), s.basis.Size())
}

func (s *BasisSuite) TestPivotPrefersSmallestMagnitude() {
	require := require.New(s.T())
	x, y := s.reg.Distance(1, 2), s.reg.Distance(3, 4)
	// 3x - y = 0 then x + y = 0 forces x = y = 0
	_, _ = s.basis.Prove(constraint.New().Add(x, 3).Add(y, -1))
	require.Equal(1, s.basis.Size())
	row := s.basis.Rows()[0]
	require.Zero(sparse.Dot(row, sparse.New(sparse.Term{Var: x, Coef: 3}, sparse.Term{Var: y, Coef: -1})))

	_, _ = s.basis.Prove(constraint.New().Add(x, 1).Add(y, 1))
	require.Zero(s.basis.Size())
	require.True(s.basis.Proven(constraint.New().Add(x, 1)))
}

func TestBasisSuite(t *testing.T) {
	suite.Run(t, new(BasisSuite))
}

// TestRankInvariant drives random integer constraints and checks
// Size == |vars| - #(Prove returning false) after every call.
func TestRankInvariant(t *testing.T) {
	for _, reduce := range []bool{true, false} {
		rng := rand.New(rand.NewSource(7))
		b := nullspace.New(nullspace.WithContentReduction(reduce))
		var recorded []*constraint.Constraint
		absorbed := 0
		for i := 0; i < 60; i++ {
			c := constraint.New()
			for k := 0; k < 3; k++ {
				c.Add(sparse.Var(1+rng.Intn(8)), int64(rng.Intn(5)-2))
			}
			if c.IsTautology() {
				continue
			}
			implied, err := b.Prove(c)
			require.NoError(t, err)
			if !implied {
				absorbed++
			}
			recorded = append(recorded, c)
			require.Equal(t, len(b.Variables())-absorbed, b.Size(), "step %d", i)
		}
		for _, c := range recorded {
			assert.True(t, b.Proven(c), "every recorded constraint stays proven: %v", c)
		}
	}
}

// swapCanon folds variable 2 onto variable 1.
type swapCanon struct{}

func (swapCanon) Canonical(v sparse.Var) sparse.Var {
	if v == 2 {
		return 1
	}

	return v
}

// TestCanonicalizerFolding checks that equivalent variables share a key.
func TestCanonicalizerFolding(t *testing.T) {
	b := nullspace.New(nullspace.WithCanonicalizer(swapCanon{}))
	same := constraint.New().Add(1, 1).Add(2, -1)
	require.True(t, b.Proven(same), "x1 = x2 is a tautology after folding")

	implied, err := b.Prove(constraint.New().Add(2, 1).Add(3, -1))
	require.NoError(t, err)
	require.False(t, implied)
	assert.True(t, b.Proven(constraint.New().Add(1, 1).Add(3, -1)))
	assert.NotContains(t, b.Variables(), sparse.Var(2))

	// x1 - x2 + PI folds to PI alone
	_, err = b.Prove(constraint.New().Add(1, 1).Add(2, -1).Add(constraint.Pi, 1))
	assert.ErrorIs(t, err, nullspace.ErrInvalidConstraint)
}
