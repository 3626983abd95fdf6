// SPDX-License-Identifier: MIT

package figure

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/nullspace"
)

// Follows reports whether c is implied by everything recorded so far.
// Invalid constraints never follow.
func (f *Figure) Follows(c *constraint.Constraint) bool {
	if c.IsInvalid() {
		return false
	}

	return f.basis.Proven(c)
}

// Assume records c as given. It reports whether c was already implied.
func (f *Figure) Assume(c *constraint.Constraint) (bool, error) {
	c = c.Clone()
	c.Assumption = true

	return f.record(Assumed, c)
}

// Prove records c as established, e.g. a construction's conclusion.
func (f *Figure) Prove(c *constraint.Constraint) (bool, error) {
	return f.record(Proved, c.Clone())
}

// Force adds a Force step over the points c mentions and records c
// whether or not it follows.
func (f *Figure) Force(c *constraint.Constraint) (depgraph.OpID, error) {
	if c.IsInvalid() {
		return 0, ErrInvalidConstraint
	}
	// 1. Validate against the basis before the graph grows
	snap := f.basis.Snapshot()
	implied, err := f.basis.Prove(c)
	if err != nil {
		return 0, f.invalid(err)
	}
	// 2. Record the step
	o, err := f.g.AddForce(f.points(c))
	if err != nil {
		f.basis.Restore(snap)
		return 0, err
	}
	f.forced[o] = c.Clone()
	f.facts = append(f.facts, Fact{Kind: Forced, Constraint: f.forced[o], Implied: implied})
	f.log.Debug("constraint forced", zap.String("constraint", f.Format(c)), zap.Bool("implied", implied))

	return o, nil
}

// Conclude checks that c follows and logs it when it does. The basis is
// left unchanged.
func (f *Figure) Conclude(c *constraint.Constraint) (bool, error) {
	if c.IsInvalid() {
		return false, ErrInvalidConstraint
	}
	if !f.basis.Proven(c) {
		f.log.Debug("conclusion does not follow", zap.String("constraint", f.Format(c)))
		return false, nil
	}
	f.facts = append(f.facts, Fact{Kind: Concluded, Constraint: c.Clone(), Implied: true})

	return true, nil
}

func (f *Figure) record(k FactKind, c *constraint.Constraint) (bool, error) {
	if c.IsInvalid() {
		return false, ErrInvalidConstraint
	}
	implied, err := f.basis.Prove(c)
	if err != nil {
		return false, f.invalid(err)
	}
	f.facts = append(f.facts, Fact{Kind: k, Constraint: c, Implied: implied})
	f.log.Debug("constraint recorded",
		zap.Stringer("kind", k),
		zap.String("constraint", f.Format(c)),
		zap.Bool("implied", implied),
	)

	return implied, nil
}

// derive records c only when it is new.
func (f *Figure) derive(c *constraint.Constraint) (bool, error) {
	if c.IsTautology() || f.basis.Proven(c) {
		return false, nil
	}
	if _, err := f.record(Derived, c); err != nil {
		return false, err
	}

	return true, nil
}

func (f *Figure) invalid(err error) error {
	if errors.Is(err, nullspace.ErrInvalidConstraint) {
		return fmt.Errorf("%w: %w", ErrInvalidConstraint, err)
	}

	return err
}

// points lists the distinct points c mentions, in first-seen order.
func (f *Figure) points(c *constraint.Constraint) []depgraph.ShapeID {
	var out []depgraph.ShapeID
	seen := make(map[constraint.PointID]bool)
	for _, t := range c.Terms() {
		v, ok := f.vars.Lookup(t.Var)
		if !ok {
			continue
		}
		for i := 0; i < v.Arity(); i++ {
			p := v.Points[i]
			if !seen[p] {
				seen[p] = true
				out = append(out, Shape(p))
			}
		}
	}

	return out
}
