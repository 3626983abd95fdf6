// SPDX-License-Identifier: MIT

package figure_test

import (
	"fmt"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/figure"
)

// Two circles of radius AB about A and B meet in a point equidistant
// from both centres.
func ExampleFigure_Intersect() {
	f := figure.New()
	a := f.AddPoint("A", 0, 0)
	b := f.AddPoint("B", 1, 0)
	ca, _ := f.AddCircle(a, b, "")
	cb, _ := f.AddCircle(b, a, "")
	pts, _ := f.Intersect(ca, cb, "C", "D")

	ac, _ := f.Distance(a, pts[0])
	bc, _ := f.Distance(b, pts[0])
	c := constraint.New().Add(ac, 1).Add(bc, -1)
	fmt.Println(f.Format(c), f.Follows(c))
	// Output:
	// dist(A,C)=dist(B,C) true
}
