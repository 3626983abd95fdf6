// SPDX-License-Identifier: MIT

// Package nullspace maintains, incrementally and exactly, a basis of the
// orthogonal complement of the span of every constraint proven so far.
//
// What:
//
//   - Conceptually the basis starts as the identity over all variables.
//     In practice it starts empty and AddVariable appends the unit row e_v
//     the first time a constraint mentions v.
//   - Proven(c): c follows from the recorded constraints iff c is orthogonal
//     to every basis row. No state changes.
//   - Prove(c): records c. Computes Nx[i] = row[i]·c; if all are zero, c was
//     already implied. Otherwise one fraction-free elimination step drops a
//     pivot row and combines every other affected row with it:
//
//     row[i] ← Nx[i]·row[p] − Nx[p]·row[i]
//
//     The pivot p minimizes the nonzero |Nx[i]| (first occurrence on ties)
//     to limit coefficient growth.
//   - Snapshot/Restore: shallow row-list copies for caller-driven rollback.
//
// Invariant:
//
//	Size() == len(Variables()) − rank(proven constraints)
//
// Equivalent angle variables are folded through an optional Canonicalizer
// before any of the above, so geometrically identical angles collapse to one
// basis key.
//
// Options:
//
//   - WithCanonicalizer(c)       fold variables through c (default identity)
//   - WithContentReduction(on)   divide each new row by its gcd (default true)
//
// Errors:
//
//   - ErrInvalidConstraint       Prove was handed k·π = 0
//
// Complexity:
//
//   - Proven: O(R·T), Prove: O(R·(T+W)) where R = rows, T = terms of c,
//     W = terms of the pivot row.
package nullspace
