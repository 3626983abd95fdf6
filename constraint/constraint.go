// SPDX-License-Identifier: MIT

package constraint

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/grace/sparse"
)

// Constraint is an integer-linear equality, sum(coef·var) = 0.
type Constraint struct {
	vec sparse.Vector

	// Assumption marks input constraints (assumed rather than derived).
	Assumption bool
}

// New returns the empty constraint 0 = 0.
func New() *Constraint { return &Constraint{} }

// Equation builds lhs = rhs, i.e. lhs - rhs = 0.
func Equation(lhs, rhs []sparse.Term) *Constraint {
	c := New()
	for _, t := range lhs {
		c.Add(t.Var, t.Coef)
	}
	for _, t := range rhs {
		c.Add(t.Var, -t.Coef)
	}

	return c
}

// FromVector wraps a copy of v.
func FromVector(v sparse.Vector) *Constraint {
	return &Constraint{vec: v.Clone()}
}

// Add accumulates weight w on variable v and returns c for chaining.
func (c *Constraint) Add(v sparse.Var, w int64) *Constraint {
	c.vec.Add(v, w)
	return c
}

// Vector returns a copy of the coefficient vector.
func (c *Constraint) Vector() sparse.Vector { return c.vec.Clone() }

// Terms returns the terms in insertion order.
func (c *Constraint) Terms() []sparse.Term { return c.vec.Terms() }

// Len returns the number of nonzero terms.
func (c *Constraint) Len() int { return c.vec.Len() }

// Coef returns the coefficient of v.
func (c *Constraint) Coef(v sparse.Var) int64 { return c.vec.Coef(v) }

// IsTautology reports whether every term cancelled (0 = 0).
func (c *Constraint) IsTautology() bool { return c.vec.IsZero() }

// IsInvalid reports whether c asserts k·π = 0.
func (c *Constraint) IsInvalid() bool {
	return c.vec.Len() == 1 && c.vec.Has(Pi)
}

// Clone returns an independent copy.
func (c *Constraint) Clone() *Constraint {
	return &Constraint{vec: c.vec.Clone(), Assumption: c.Assumption}
}

// Format renders c with n naming the variables.
func (c *Constraint) Format(n Namer) string {
	var left, right strings.Builder
	for _, t := range c.vec.Terms() {
		side, w := &left, t.Coef
		if w < 0 {
			side, w = &right, -w
		}
		if side.Len() > 0 {
			side.WriteByte('+')
		}
		if w != 1 {
			fmt.Fprintf(side, "%d*", w)
		}
		side.WriteString(n.Name(t.Var))
	}
	if left.Len() == 0 {
		left.WriteByte('0')
	}
	if right.Len() == 0 {
		right.WriteByte('0')
	}

	return left.String() + "=" + right.String()
}

// String renders c with raw handles, PI for handle 0.
func (c *Constraint) String() string {
	return c.Format(rawNamer{})
}

type rawNamer struct{}

func (rawNamer) Name(v sparse.Var) string {
	if v == Pi {
		return "PI"
	}

	return fmt.Sprintf("x%d", v)
}
