// SPDX-License-Identifier: MIT

package depgraph

import "fmt"

// Visitation states for Validate.
const (
	white = iota // not visited
	gray         // on the DFS stack
	black        // fully explored
)

// Validate checks the structural invariants: every child names its op as
// Source, every parent lists the op among its Offspring, and no op
// transitively consumes its own output.
func (g *Graph) Validate() error {
	// 1. Edge bookkeeping
	for o, op := range g.ops {
		for _, c := range op.Children {
			if !g.hasShape(c) || g.shapes[c].Source != OpID(o) {
				return fmt.Errorf("depgraph: op %d child %d has a different source", o, c)
			}
		}
		for _, p := range op.Parents {
			if !g.hasShape(p) || !containsOp(g.shapes[p].Offspring, OpID(o)) {
				return fmt.Errorf("depgraph: op %d missing from offspring of %d", o, p)
			}
		}
	}

	// 2. Three-colour DFS over op → child → offspring op
	state := make([]int, len(g.ops))
	for o := range g.ops {
		if state[o] == white {
			if err := g.visit(OpID(o), state); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Graph) visit(o OpID, state []int) error {
	state[o] = gray
	for _, c := range g.ops[o].Children {
		for _, next := range g.shapes[c].Offspring {
			switch state[next] {
			case gray:
				return fmt.Errorf("%w: op %d reaches op %d", ErrCycleDetected, next, o)
			case white:
				if err := g.visit(next, state); err != nil {
					return err
				}
			}
		}
	}
	state[o] = black

	return nil
}

func containsOp(ids []OpID, x OpID) bool {
	for _, v := range ids {
		if v == x {
			return true
		}
	}

	return false
}
