// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"strings"
)

// Var is an opaque variable handle. Handles are dense small integers
// allocated by a registry; the algebra never interprets them.
type Var int

// Term is one (variable, coefficient) pair of a Vector.
type Term struct {
	Var  Var
	Coef int64
}

// Vector maps variables to nonzero integer coefficients.
// The zero value is an empty vector ready to use.
type Vector struct {
	terms []Term      // insertion-ordered terms, no zero coefficients
	pos   map[Var]int // Var → index into terms
}

// New returns a vector holding the given terms, merged left to right.
func New(terms ...Term) Vector {
	var v Vector
	for _, t := range terms {
		v.Add(t.Var, t.Coef)
	}

	return v
}

// Unit returns the unit vector e_x.
func Unit(x Var) Vector {
	return New(Term{Var: x, Coef: 1})
}

// Len reports the number of nonzero terms.
func (v *Vector) Len() int { return len(v.terms) }

// IsZero reports whether v has no terms.
func (v *Vector) IsZero() bool { return len(v.terms) == 0 }

// Coef returns the coefficient of x, or 0 if x is absent.
func (v *Vector) Coef(x Var) int64 {
	if i, ok := v.pos[x]; ok {
		return v.terms[i].Coef
	}

	return 0
}

// Has reports whether x has a nonzero coefficient.
func (v *Vector) Has(x Var) bool {
	_, ok := v.pos[x]
	return ok
}

// Terms returns a copy of the terms in insertion order.
func (v *Vector) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)

	return out
}

// Vars returns the variables of v in insertion order.
func (v *Vector) Vars() []Var {
	out := make([]Var, len(v.terms))
	for i, t := range v.terms {
		out[i] = t.Var
	}

	return out
}

// Add accumulates w into the coefficient of x. A coefficient that
// reaches zero removes the term.
func (v *Vector) Add(x Var, w int64) {
	if w == 0 {
		return
	}
	if v.pos == nil {
		v.pos = make(map[Var]int)
	}
	i, ok := v.pos[x]
	if !ok {
		v.pos[x] = len(v.terms)
		v.terms = append(v.terms, Term{Var: x, Coef: w})
		return
	}
	nw := v.terms[i].Coef + w
	if nw != 0 {
		v.terms[i].Coef = nw
		return
	}
	v.remove(i)
}

// remove deletes terms[i] and reindexes the tail.
func (v *Vector) remove(i int) {
	delete(v.pos, v.terms[i].Var)
	copy(v.terms[i:], v.terms[i+1:])
	v.terms = v.terms[:len(v.terms)-1]
	for j := i; j < len(v.terms); j++ {
		v.pos[v.terms[j].Var] = j
	}
}

// Merge adds w*o into v term by term.
func (v *Vector) Merge(o Vector, w int64) {
	for _, t := range o.terms {
		v.Add(t.Var, w*t.Coef)
	}
}

// Clone returns a deep copy of v.
func (v *Vector) Clone() Vector {
	out := Vector{
		terms: make([]Term, len(v.terms)),
		pos:   make(map[Var]int, len(v.terms)),
	}
	copy(out.terms, v.terms)
	for i, t := range out.terms {
		out.pos[t.Var] = i
	}

	return out
}

// Equal reports whether a and b hold the same coefficients,
// regardless of term order.
func Equal(a, b Vector) bool {
	if len(a.terms) != len(b.terms) {
		return false
	}
	for _, t := range a.terms {
		if b.Coef(t.Var) != t.Coef {
			return false
		}
	}

	return true
}

// Dot returns the integer dot product of a and b.
func Dot(a, b Vector) int64 {
	// iterate the shorter vector, probe the longer one
	if len(a.terms) > len(b.terms) {
		a, b = b, a
	}
	var sum int64
	for _, t := range a.terms {
		if i, ok := b.pos[t.Var]; ok {
			sum += t.Coef * b.terms[i].Coef
		}
	}

	return sum
}

// LinComb returns w1*a + w2*b. Terms of a come first, then the terms
// that only b has, each group in its own insertion order.
func LinComb(w1 int64, a Vector, w2 int64, b Vector) Vector {
	var out Vector
	for _, t := range a.terms {
		out.Add(t.Var, w1*t.Coef+w2*b.Coef(t.Var))
	}
	for _, t := range b.terms {
		if a.Has(t.Var) {
			continue
		}
		out.Add(t.Var, w2*t.Coef)
	}

	return out
}

// Content returns the gcd of the absolute coefficients of v, or 0 for the
// zero vector.
func Content(v Vector) int64 {
	var g int64
	for _, t := range v.terms {
		g = gcd(g, abs(t.Coef))
		if g == 1 {
			return 1
		}
	}

	return g
}

// Reduce returns v divided by its content. The division is exact.
func Reduce(v Vector) Vector {
	g := Content(v)
	if g <= 1 {
		return v
	}
	out := v.Clone()
	for i := range out.terms {
		out.terms[i].Coef /= g
	}

	return out
}

// String renders v as "[3·x1 -2·x4]" using raw handles; intended for
// debugging and test failure messages.
func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, t := range v.terms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d·x%d", t.Coef, t.Var)
	}
	sb.WriteByte(']')

	return sb.String()
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}

	return x
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
