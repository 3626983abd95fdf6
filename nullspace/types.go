// SPDX-License-Identifier: MIT

package nullspace

import (
	"errors"

	"github.com/katalvlaran/grace/sparse"
)

// ErrInvalidConstraint indicates a constraint that reduces to k·π = 0.
var ErrInvalidConstraint = errors.New("nullspace: constraint asserts PI = 0")

// Canonicalizer maps a variable to the representative of its equivalence
// class. Variables without equivalents map to themselves.
type Canonicalizer interface {
	Canonical(v sparse.Var) sparse.Var
}

// Option configures a Basis at construction time.
type Option func(*Basis)

// WithCanonicalizer folds every variable through c before use.
func WithCanonicalizer(c Canonicalizer) Option {
	return func(b *Basis) { b.canon = c }
}

// WithContentReduction toggles dividing each freshly combined row by the
// gcd of its coefficients. The division is exact and keeps the row's span,
// it only keeps numbers small.
func WithContentReduction(on bool) Option {
	return func(b *Basis) { b.reduce = on }
}

// Basis is the incremental nullspace. The zero value is not usable; call New.
type Basis struct {
	rows   []sparse.Vector         // basis rows; never mutated in place
	vars   []sparse.Var            // variable set in registration order
	known  map[sparse.Var]struct{} // membership index over vars
	canon  Canonicalizer           // nil means identity
	reduce bool                    // divide new rows by their content
}

// New returns an empty basis.
func New(opts ...Option) *Basis {
	b := &Basis{
		known:  make(map[sparse.Var]struct{}),
		reduce: true,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}
