// SPDX-License-Identifier: MIT

// Package constraint defines measured variables and the integer-linear
// constraints built over them.
//
// A Variable is one measured quantity of a figure: the distance between two
// points, the angle p1-apex-p2, or the constant π. Variables are allocated by
// a Registry, which hands out one stable sparse.Var per distinct measurement
// (structural sharing: asking twice for dist(A,B), or for dist(B,A), yields
// the same handle). Handle 0 is reserved for π in every registry.
//
// A Constraint is a sparse integer vector over those handles, read as
// "sum of coefficient·variable = 0". Building "L = R" adds the left terms
// with their weights and the right terms negated.
//
// Validation outcomes:
//
//   - IsTautology: no terms left (0 = 0). Accepted as a no-op downstream.
//   - IsInvalid:   exactly one term and it is π, i.e. k·π = 0.
//
// Rendering (Format) groups positive terms on the left and negated negative
// terms on the right, elides coefficient 1, writes "0" for an empty side:
//
//	dist(A,B)+dist(B,C)=dist(A,C)
//	2*angle(A,B,C)=PI
package constraint
