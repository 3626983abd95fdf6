// SPDX-License-Identifier: MIT

// Package library reads and writes construction libraries: plain text
// files holding one or more templates.
//
//	# comments run to the end of the line; ';' works too
//	Construction "Midpoint"
//	"midpoint of AB"
//	Input A 0 0
//	Input B 2 0
//	Steps
//	pb = PerpBi(A, B)
//	ab = LineSegment(A, B)
//	M = Intersect(pb, ab)
//	Output M
//	Conclude dist(A,M) = dist(M,B)
//
// A step is "names = Primitive(args)", "names = "Nested"(args)" or
// "Force expr". Constraint expressions are sums of optionally weighted
// dist(a,b), angle(a,b,c) or PI terms on each side of '='; an empty side
// is written 0. Nested templates must be defined earlier in the library.
//
// Errors are *ParseError values carrying file, line and column, and
// unwrapping to ErrSyntax, ErrDuplicateName, ErrUnknownName,
// ErrUnknownConstruction or ErrArgCount.
package library
