// SPDX-License-Identifier: MIT

package nullspace

import (
	"strings"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/sparse"
)

// AddVariable appends the unit row e_v and registers v.
// Registering a known variable is a no-op.
func (b *Basis) AddVariable(v sparse.Var) {
	if _, ok := b.known[v]; ok {
		return
	}
	b.known[v] = struct{}{}
	b.vars = append(b.vars, v)
	b.rows = append(b.rows, sparse.Unit(v))
}

// Proven reports whether c is implied by every constraint recorded so far.
// It never changes the basis.
func (b *Basis) Proven(c *constraint.Constraint) bool {
	x := b.fold(c)
	if x.IsZero() {
		return true
	}
	// an unseen variable owns an implicit unit row, so its coefficient
	// alone makes the dot product nonzero
	for _, v := range x.Vars() {
		if _, ok := b.known[v]; !ok {
			return false
		}
	}
	for _, row := range b.rows {
		if sparse.Dot(row, x) != 0 {
			return false
		}
	}

	return true
}

// Prove records c. It returns true when c was already implied (the basis is
// unchanged) and false when c carried new information and one row was
// eliminated. Constraints asserting k·π = 0 are rejected with
// ErrInvalidConstraint before the basis is touched.
func (b *Basis) Prove(c *constraint.Constraint) (bool, error) {
	// 1. Validate before touching any state
	if c.IsInvalid() {
		return false, ErrInvalidConstraint
	}
	x := b.fold(c)
	if x.IsZero() {
		return true, nil
	}
	if x.Len() == 1 && x.Has(constraint.Pi) {
		return false, ErrInvalidConstraint
	}

	// 2. Register unseen variables
	for _, v := range x.Vars() {
		b.AddVariable(v)
	}

	// 3. Nx = N·x, remembering the smallest nonzero magnitude
	nx := make([]int64, len(b.rows))
	pivot := -1
	for i, row := range b.rows {
		nx[i] = sparse.Dot(row, x)
		if nx[i] == 0 {
			continue
		}
		if pivot < 0 || abs(nx[i]) < abs(nx[pivot]) {
			pivot = i
		}
	}
	if pivot < 0 {
		return true, nil
	}

	// 4. Build the next row list; unaffected rows are shared, not copied
	pr := b.rows[pivot]
	next := make([]sparse.Vector, 0, len(b.rows)-1)
	for i, row := range b.rows {
		switch {
		case i == pivot:
			continue
		case nx[i] == 0:
			next = append(next, row)
		default:
			r := sparse.LinComb(nx[i], pr, -nx[pivot], row)
			if b.reduce {
				r = sparse.Reduce(r)
			}
			next = append(next, r)
		}
	}
	b.rows = next

	return false, nil
}

// fold maps every variable of c to its canonical representative and merges
// the terms that collide.
func (b *Basis) fold(c *constraint.Constraint) sparse.Vector {
	if b.canon == nil {
		return c.Vector()
	}
	var x sparse.Vector
	for _, t := range c.Terms() {
		x.Add(b.canon.Canonical(t.Var), t.Coef)
	}

	return x
}

// Size returns the number of basis rows.
func (b *Basis) Size() int { return len(b.rows) }

// Variables returns the registered variables in registration order.
func (b *Basis) Variables() []sparse.Var {
	out := make([]sparse.Var, len(b.vars))
	copy(out, b.vars)

	return out
}

// Rank returns how many independent constraints have been recorded.
func (b *Basis) Rank() int { return len(b.vars) - len(b.rows) }

// Rows returns the current basis rows. The vectors are shared and must not
// be mutated.
func (b *Basis) Rows() []sparse.Vector {
	out := make([]sparse.Vector, len(b.rows))
	copy(out, b.rows)

	return out
}

// Snapshot returns a copy that shares row vectors with b. Rows are never
// mutated in place, so later Prove calls on either copy do not leak into
// the other.
func (b *Basis) Snapshot() *Basis {
	s := &Basis{
		rows:   make([]sparse.Vector, len(b.rows)),
		vars:   make([]sparse.Var, len(b.vars)),
		known:  make(map[sparse.Var]struct{}, len(b.known)),
		canon:  b.canon,
		reduce: b.reduce,
	}
	copy(s.rows, b.rows)
	copy(s.vars, b.vars)
	for v := range b.known {
		s.known[v] = struct{}{}
	}

	return s
}

// Restore makes b equal to snapshot s. s stays usable.
func (b *Basis) Restore(s *Basis) {
	r := s.Snapshot()
	b.rows, b.vars, b.known = r.rows, r.vars, r.known
	b.canon, b.reduce = r.canon, r.reduce
}

// Reset empties the basis, keeping its options.
func (b *Basis) Reset() {
	b.rows = nil
	b.vars = nil
	b.known = make(map[sparse.Var]struct{})
}

// Format renders the rows one per line with n naming variables.
func (b *Basis) Format(n constraint.Namer) string {
	var sb strings.Builder
	for i, row := range b.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(constraint.FromVector(row).Format(n))
	}

	return sb.String()
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}

	return x
}
