package nullspace_test

import (
	"fmt"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/nullspace"
)

// ExampleBasis_Prove records two equalities and asks for a third that was
// never stated.
func ExampleBasis_Prove() {
	label := map[constraint.PointID]string{1: "A", 2: "B", 3: "C", 4: "D"}
	reg := constraint.NewRegistry(func(p constraint.PointID) string { return label[p] })
	b := nullspace.New()

	ab, bc, cd := reg.Distance(1, 2), reg.Distance(2, 3), reg.Distance(3, 4)
	_, _ = b.Prove(constraint.New().Add(ab, 1).Add(bc, -1))
	_, _ = b.Prove(constraint.New().Add(bc, 1).Add(cd, -1))

	goal := constraint.New().Add(ab, 1).Add(cd, -1)
	fmt.Println(goal.Format(reg), b.Proven(goal))
	fmt.Println("rows:", b.Size(), "rank:", b.Rank())

	// Output:
	// dist(A,B)=dist(C,D) true
	// rows: 1 rank: 2
}
