// SPDX-License-Identifier: MIT

package depgraph

import "fmt"

// Checkpoint records the current arena sizes.
func (g *Graph) Checkpoint() Checkpoint {
	return Checkpoint{Shapes: len(g.shapes), Ops: len(g.ops)}
}

// Rollback removes every shape and op created after cp. Surviving shapes
// lose the Offspring entries that pointed at removed ops.
func (g *Graph) Rollback(cp Checkpoint) error {
	if cp.Shapes > len(g.shapes) || cp.Ops > len(g.ops) || cp.Shapes < 0 || cp.Ops < 0 {
		return fmt.Errorf("%w: %+v", ErrBadCheckpoint, cp)
	}
	// 1. Detach removed ops from surviving parents
	for o := cp.Ops; o < len(g.ops); o++ {
		for _, p := range g.ops[o].Parents {
			if int(p) >= cp.Shapes {
				continue
			}
			g.shapes[p].Offspring = withoutOp(g.shapes[p].Offspring, OpID(o))
		}
	}
	// 2. Forget shared measurements that are going away
	for k, s := range g.measures {
		if int(s) >= cp.Shapes {
			delete(g.measures, k)
		}
	}
	// 3. Truncate both arenas
	g.shapes = g.shapes[:cp.Shapes]
	g.ops = g.ops[:cp.Ops]

	return nil
}

func withoutOp(ids []OpID, x OpID) []OpID {
	out := ids[:0]
	for _, v := range ids {
		if v != x {
			out = append(out, v)
		}
	}

	return out
}
