// SPDX-License-Identifier: MIT

// Package figure is one editing session over a geometric figure: the
// dependency graph of shapes, the variable registry, the nullspace basis and
// the point-order poset, kept consistent with each other.
//
// What:
//
//   - AddPoint, AddSegment, AddRay, AddComplementaryRay, AddLine,
//     AddPerpendicularBisector and AddCircle append one step each.
//   - Intersect adds the meeting points of two shapes and derives what the
//     figure now knows about them: betweenness on ordered line-like shapes,
//     equal radii on circles, equal distances on perpendicular bisectors.
//     Every derived fact is checked with Follows first and only recorded
//     when it is new.
//   - Distance and Angle name measurements; constraints are built over the
//     returned variables with constraint.New().Add(...).
//   - Assume records a constraint as given, Force records it as a graph step
//     too, Follows asks whether it is implied, Conclude checks and logs it.
//   - Drag moves a free point and recomputes geometry only.
//   - Checkpoint / Rollback undo every step after a checkpoint.
//
// The lower-level hooks Track, Place, Settle and Teardown let the
// construction package drive the same derivations for template output.
//
// Errors:
//
//   - ErrInvalidConstraint  constraint reduces to k·PI = 0
//   - ErrNotLineLike        Track given an unsupported shape kind
//   - depgraph errors       propagated unchanged
package figure
