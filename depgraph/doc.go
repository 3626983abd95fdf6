// SPDX-License-Identifier: MIT

// Package depgraph stores a figure as a bipartite DAG of shapes and the
// operations that produced them, and recomputes geometry incrementally when
// a free point moves.
//
// What:
//
//   - Shapes and ops live in two arenas addressed by ShapeID and OpID.
//     Every shape has exactly one Source op; every op lists its Parents
//     and Children in order; a shape's Offspring are the ops consuming it.
//   - Constructors append one op and its children per call. Creation order
//     is therefore a topological order, and the graph is never back-edited.
//   - Recompute(op) re-derives an op's children from its parents. Failure
//     is local: the op's Successful flag and its children's Valid flags
//     drop, nothing is returned as an error.
//   - MarkAndCollectAffected(p) + Apply, or Drag, move a free point and
//     recompute exactly the ops downstream of it:
//
//     1. DFS over p's transitive offspring, marking each op once and
//     setting Measure ops aside.
//     2. Walk all ops in creation order, keeping the marked ones; an
//     unmarked op that last failed sets PreexistingFailure.
//     3. Append the Measure ops.
//     4. Move p and recompute the list in order.
//
//     The pass succeeds iff no affected op failed and nothing was already
//     broken elsewhere.
//   - Checkpoint / Rollback drop every node created after a checkpoint.
//   - Validate checks the DAG invariant with a White/Gray/Black DFS.
//
// Errors:
//
//   - ErrUnknownShape, ErrUnknownOp   handle outside the arena
//   - ErrNotPoint                     a point was required
//   - ErrNotFree                      Move/Drag on a non-free point
//   - ErrEmptyIntersection            the shapes do not meet
//   - ErrCycleDetected                Validate found a back edge
//   - ErrBadCheckpoint                checkpoint from the future
//
// Complexity:
//
//   - MarkAndCollectAffected: O(ops + edges)
//   - Apply: sum of the affected ops' recompute costs
//   - Validate: O(ops + shapes + edges)
package depgraph
