// SPDX-License-Identifier: MIT

// Package construction models reusable construction templates: macros that
// expand a list of rules over input points into new shapes, together with
// the constraints they assume and conclude.
//
// What:
//
//   - A Template holds Input rules first, then primitive, Intersect,
//     nested Construction and Force rules, and a final Output rule. Rules
//     refer to earlier results through Ref{Step, Child}.
//   - Instantiate(f, t, inputs, names) applies t to a figure:
//
//     1. check the input count and kinds;
//     2. check every assumption follows in f;
//     3. replay the rules geometrically, nested templates flattened;
//     4. add one Construction op whose children are all produced shapes;
//     5. track produced shapes in the poset and record Force rules;
//     6. prove the conclusions and settle the output points;
//     7. tear down the intermediate points.
//
//     Any failure rolls f back to where it was.
//   - Template implements depgraph.Evaluator, so dragging an input replays
//     the geometry without touching constraints.
//   - Replay(f, t) draws t step by step from its input defaults, the way a
//     user would, and reports whether each conclusion follows.
//   - Freeze(f, ...) turns a figure's steps back into a Template.
//
// Errors:
//
//   - *Error wraps ErrArity, ErrAssumptionNotMet, ErrBadInputs,
//     ErrTooFewOutputs, ErrUnknownRef or ErrNotImplied with the template
//     name and step.
package construction
