// SPDX-License-Identifier: MIT

package figure

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/grace/depgraph"
)

// Checkpoint captures the figure so that Rollback can return to it.
func (f *Figure) Checkpoint() Checkpoint {
	return Checkpoint{
		graph: f.g.Checkpoint(),
		vars:  f.vars.Len(),
		facts: len(f.facts),
		basis: f.basis.Snapshot(),
		po:    f.po.Snapshot(),
		canon: f.canon.Snapshot(),
	}
}

// Rollback undoes every step taken after cp.
func (f *Figure) Rollback(cp Checkpoint) error {
	if err := f.g.Rollback(cp.graph); err != nil {
		return err
	}
	f.vars.Truncate(cp.vars)
	f.facts = f.facts[:cp.facts]
	f.basis.Restore(cp.basis)
	f.po.Restore(cp.po)
	f.canon.Restore(cp.canon)

	n := depgraph.ShapeID(cp.graph.Shapes)
	for s := range f.anchors {
		if s >= n {
			delete(f.anchors, s)
		}
	}
	for s := range f.circles {
		if s >= n {
			delete(f.circles, s)
		}
	}
	for s := range f.bisectors {
		if s >= n {
			delete(f.bisectors, s)
		}
	}
	for p, shapes := range f.on {
		if p >= n {
			delete(f.on, p)
			continue
		}
		kept := shapes[:0]
		for _, s := range shapes {
			if s < n {
				kept = append(kept, s)
			}
		}
		f.on[p] = kept
	}
	for o := range f.forced {
		if int(o) >= cp.graph.Ops {
			delete(f.forced, o)
		}
	}
	f.log.Debug("rollback", zap.Int("shapes", cp.graph.Shapes), zap.Int("ops", cp.graph.Ops))

	return nil
}
