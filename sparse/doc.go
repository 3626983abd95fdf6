// SPDX-License-Identifier: MIT

// Package sparse implements exact integer sparse vectors keyed by opaque
// variable handles. It is the arithmetic foundation of the constraint and
// nullspace packages.
//
// What:
//
//   - Vector: ordered list of (Var, coefficient) terms with O(1) lookup.
//     Zero coefficients are never stored.
//   - Add / Merge: accumulate terms, dropping any coefficient that cancels.
//   - Dot: integer dot product of two vectors.
//   - LinComb: w1*a + w2*b, the only row operation the nullspace needs.
//   - Content / Reduce: gcd of the coefficients and exact division by it.
//
// Why:
//
//   - All arithmetic is int64; there is no floating point anywhere, so
//     "does C follow" is answered exactly.
//   - Terms keep insertion order, which makes textual rendering stable.
//
// Complexity:
//
//   - Add, Coef:     O(1) amortized (O(n) when a term cancels and is removed)
//   - Dot:           O(min(|a|,|b|))
//   - LinComb:       O(|a|+|b|)
//
// Vectors returned by Dot/LinComb/Reduce are fresh values; callers that keep
// a Vector inside a long-lived structure treat it as immutable afterwards.
package sparse
