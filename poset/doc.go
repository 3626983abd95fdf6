// SPDX-License-Identifier: MIT

// Package poset records the known left-to-right order of points along
// line-like shapes and turns that order into betweenness constraints.
//
// What:
//
//   - Node: one appearance of a point on one line, with its immediate left
//     and right neighbours. A point on several lines owns several nodes.
//     Several immediate neighbours per side are allowed; the structure is a
//     partial order, not a chain.
//   - Anchor: the two reference nodes of a segment, ray or complementary
//     ray (P is the shape's first point, Q its second) plus QOnLeft, the
//     direction of Q as seen from P.
//   - Place / PlaceTwo: insert intersection points on a shape per its
//     extent. Segment: between P and Q. Ray: beyond P on Q's side.
//     Complementary ray: beyond P away from Q. Lines and perpendicular
//     bisectors carry no order.
//   - Finalize: clear a node's New flag and emit
//
//     dist(L,Q) + dist(Q,R) = dist(L,R)
//
//     for every non-new L on its left and R on its right (new nodes are
//     looked through), plus "L between A and Q" for each A left of L and
//     "R between Q and B" for each B right of R.
//   - DeletePoint: tear a point out of every line it is on. Each
//     (left, right) neighbour pair is relinked first, so the order of the
//     remaining points is kept.
//
// Nodes live in an arena addressed by NodeID. Deleted nodes stay in the
// arena, unlinked, so anchors that still name them do not dangle.
//
// Complexity:
//
//   - FindOnLeft / FindOnRight: O(reachable nodes on that side)
//   - Finalize: O(|left|·|right| + closure sizes)
//   - Snapshot / Restore: O(nodes + links)
package poset
