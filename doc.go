// SPDX-License-Identifier: MIT

// Package grace is a geometric-construction engine: build figures from
// points, lines and circles, intersect them, and ask whether an
// integer-weighted equality among the figure's distances and angles follows
// exactly from everything established so far.
//
// The work is split over small packages, leaves first:
//
//	sparse/        integer sparse vectors
//	constraint/    distance/angle/π variables and linear equalities over them
//	nullspace/     exact incremental basis answering Proven and Prove
//	poset/         point order along lines, betweenness facts
//	angle/         folds angles with coinciding rays to one variable
//	geometry/      shape values and the analytic intersector
//	depgraph/      shape/op dependency graph, drag and recompute
//	figure/        a session tying the above together
//	construction/  reusable construction templates
//	library/       text format for template libraries
//
// Quick example:
//
//	f := figure.New()
//	a := f.AddPoint("A", 0, 0)
//	b := f.AddPoint("B", 1, 0)
//	c1, _ := f.AddCircle(a, b, "")
//	c2, _ := f.AddCircle(b, a, "")
//	_, _ = f.Intersect(c1, c2, "C", "D")
//
// after which dist(A,C)=dist(B,C) follows.
//
// The grace command (cmd/grace) checks library files from the shell:
//
//	go install github.com/katalvlaran/grace/cmd/grace@latest
//	grace check --bundled 'lib/**/*.grace'
package grace
