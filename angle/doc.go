// SPDX-License-Identifier: MIT

// Package angle folds geometrically identical angle variables onto one
// representative before they reach the nullspace.
//
// Two angle measurements denote the same angle iff they share an apex and
// their rays coincide, in either order. A ray is an apex node in the point
// order poset plus a direction (left or right along that node's line).
// angle(P1,O,P2) and angle(X,O,Y) are the same when X lies on P1's ray and
// Y on P2's ray, or crosswise.
//
// Rays are found lazily from the apex's existing poset nodes. When no line
// through the apex contains the sighted point yet, a fresh two-node chain
// apex→point is created so later points placed on that line can join it.
//
// The first angle variable that produced a ray pair is its representative.
// Results are memoized per variable: once folded, a variable never changes
// class.
//
// Canonicalizer implements nullspace.Canonicalizer.
package angle
