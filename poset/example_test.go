package poset_test

import (
	"fmt"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/poset"
)

// ExamplePoset_Finalize places M on segment AB and prints what that order
// implies about distances.
func ExamplePoset_Finalize() {
	label := map[constraint.PointID]string{1: "A", 2: "B", 3: "M"}
	reg := constraint.NewRegistry(func(p constraint.PointID) string { return label[p] })
	s := poset.New()

	seg := s.MakeAnchor(1, 2, poset.Segment)
	m := s.NewNode(3)
	s.Place(seg, m)

	for _, c := range s.Finalize(m, reg) {
		fmt.Println(c.Format(reg))
	}

	// Output:
	// dist(A,M)+dist(M,B)=dist(A,B)
}
