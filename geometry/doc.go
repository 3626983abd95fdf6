// SPDX-License-Identifier: MIT

// Package geometry holds the concrete coordinates of figure shapes and the
// default analytic intersection and measurement formulas.
//
// Shape is a closed tagged variant; Kind says which fields are meaningful:
//
//	Point                  (X1,Y1)
//	Segment                endpoints (X1,Y1) and (X2,Y2)
//	Ray                    origin (X1,Y1), through (X2,Y2)
//	ComplementaryRay       origin (X1,Y1), extends away from (X2,Y2)
//	Line                   through (X1,Y1) and (X2,Y2)
//	PerpendicularBisector  midpoint (X1,Y1) and a second point on it (X2,Y2)
//	Circle                 centre (X1,Y1), radius R
//	Measurement            Value (distance, or angle in degrees)
//
// Analytic implements the intersector consumed by the dependency graph.
// Intersections are filtered by each shape's extent and returned 0, 1 or 2
// at a time. When a line-like shape yields two points they are ordered by
// distance from that shape's first point.
package geometry
