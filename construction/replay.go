// SPDX-License-Identifier: MIT

package construction

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/figure"
)

// View is a template drawn step by step.
type View struct {
	// Shapes holds every rule's children, indexed like Template.Rules.
	Shapes      [][]depgraph.ShapeID
	Outputs     []depgraph.ShapeID
	Conclusions []*constraint.Constraint
	// Hold[i] reports whether Conclusions[i] follows.
	Hold []bool
}

// Holds reports whether every conclusion follows.
func (v *View) Holds() bool {
	for _, h := range v.Hold {
		if !h {
			return false
		}
	}

	return true
}

// Replay draws t into f from its inputs' default positions: inputs become
// free points, assumptions are assumed, each rule becomes its own step and
// nested templates are instantiated. The conclusions are then checked, not
// recorded. On error f is rolled back.
func Replay(f *figure.Figure, t *Template, opts ...Option) (*View, error) {
	cp := f.Checkpoint()
	v, err := replay(f, t, opts)
	if err != nil {
		if rerr := f.Rollback(cp); rerr != nil {
			return nil, rerr
		}
		return nil, err
	}
	f.Logger().Debug("replayed",
		zap.String("construction", t.Name),
		zap.Int("steps", len(t.Rules)),
		zap.Bool("holds", v.Holds()),
	)

	return v, nil
}

func replay(f *figure.Figure, t *Template, opts []Option) (*View, error) {
	v := &View{Shapes: make([][]depgraph.ShapeID, len(t.Rules))}
	n := t.NumInputs()

	// 1. Inputs at their defaults
	for i := 0; i < n; i++ {
		r := t.Rules[i]
		if !r.HasDefault {
			return nil, fail(t, i, fmt.Errorf("%w: input %q has no default position", ErrBadInputs, r.Names[0]))
		}
		v.Shapes[i] = []depgraph.ShapeID{f.AddPoint(r.Names[0], r.X, r.Y)}
	}

	// 2. Assumptions hold by fiat
	for _, cr := range t.Assume {
		c, err := bind(f, t, n, cr, v.Shapes)
		if err != nil {
			return nil, err
		}
		if c.IsTautology() {
			continue
		}
		if _, err := f.Assume(c); err != nil {
			return nil, fail(t, -1, err)
		}
	}

	// 3. One step per rule
	for i := n; i < len(t.Rules); i++ {
		r := t.Rules[i]
		args, err := lookup(t, i, r.Args, v.Shapes)
		if err != nil {
			return nil, err
		}
		switch r.Kind {
		case RuleIntersect:
			if len(args) != 2 {
				return nil, fail(t, i, fmt.Errorf("%w: malformed Intersect", ErrBadInputs))
			}
			pts, err := f.Intersect(args[0], args[1], r.Names...)
			if errors.Is(err, depgraph.ErrEmptyIntersection) {
				return nil, fail(t, i, fmt.Errorf("%w: %w", ErrTooFewOutputs, err))
			}
			if err != nil {
				return nil, fail(t, i, err)
			}
			if len(pts) < len(r.Names) {
				return nil, fail(t, i, fmt.Errorf("%w: %d of %d points", ErrTooFewOutputs, len(pts), len(r.Names)))
			}
			v.Shapes[i] = pts[:len(r.Names)]
		case RuleConstruction:
			if r.Template == nil {
				return nil, fail(t, i, fmt.Errorf("%w: missing nested template", ErrBadInputs))
			}
			out, err := Instantiate(f, r.Template, args, r.Names, opts...)
			if err != nil {
				return nil, fail(t, i, err)
			}
			v.Shapes[i] = out
		case RuleForce:
			if r.Force == nil {
				return nil, fail(t, i, fmt.Errorf("%w: Force without a constraint", ErrBadInputs))
			}
			c, err := bind(f, t, i, *r.Force, v.Shapes)
			if err != nil {
				return nil, err
			}
			if _, err := f.Force(c); err != nil {
				return nil, fail(t, i, err)
			}
		case RuleOutput:
			v.Outputs = args
		case RuleInput:
			return nil, fail(t, i, fmt.Errorf("%w: Input after the first step", ErrBadInputs))
		default:
			s, err := draw(f, r, args)
			if err != nil {
				return nil, fail(t, i, err)
			}
			v.Shapes[i] = []depgraph.ShapeID{s}
		}
	}

	// 4. Check the conclusions
	for _, cr := range t.Conclude {
		c, err := bind(f, t, len(t.Rules), cr, v.Shapes)
		if err != nil {
			return nil, err
		}
		ok, err := f.Conclude(c)
		if err != nil {
			return nil, fail(t, -1, err)
		}
		v.Conclusions = append(v.Conclusions, c)
		v.Hold = append(v.Hold, ok)
	}

	return v, nil
}

// draw adds one primitive step.
func draw(f *figure.Figure, r Rule, args []depgraph.ShapeID) (depgraph.ShapeID, error) {
	if len(args) != 2 || len(r.Names) != 1 {
		return 0, fmt.Errorf("%w: malformed %s", ErrBadInputs, r.Kind)
	}
	a, b, name := args[0], args[1], r.Names[0]
	switch r.Kind {
	case RuleSegment:
		return f.AddSegment(a, b, name)
	case RuleRay:
		return f.AddRay(a, b, name)
	case RuleComplementaryRay:
		return f.AddComplementaryRay(a, b, name)
	case RuleLine:
		return f.AddLine(a, b, name)
	case RulePerpendicularBisector:
		return f.AddPerpendicularBisector(a, b, name)
	case RuleCircle:
		return f.AddCircle(a, b, name)
	default:
		return 0, fmt.Errorf("%w: unknown rule %d", ErrBadInputs, r.Kind)
	}
}

// lookup resolves references against shapes drawn so far.
func lookup(t *Template, step int, refs []Ref, env [][]depgraph.ShapeID) ([]depgraph.ShapeID, error) {
	out := make([]depgraph.ShapeID, len(refs))
	for i, ref := range refs {
		if ref.Step < 0 || ref.Step >= step || ref.Child < 0 || ref.Child >= len(env[ref.Step]) {
			return nil, fail(t, step, fmt.Errorf("%w: %+v", ErrUnknownRef, ref))
		}
		out[i] = env[ref.Step][ref.Child]
	}

	return out, nil
}

// bind instantiates cr over drawn shapes as seen from step.
func bind(f *figure.Figure, t *Template, step int, cr ConstraintRule, env [][]depgraph.ShapeID) (*constraint.Constraint, error) {
	c := constraint.New()
	add := func(ms []MeasureRule, sign int64) error {
		for _, m := range ms {
			pts, err := lookup(t, step, m.Args, env)
			if err != nil {
				return err
			}
			for _, p := range pts {
				if !f.Graph().IsPoint(p) {
					return fail(t, step, fmt.Errorf("%w: shape %d is not a point", ErrBadInputs, p))
				}
			}
			switch {
			case m.Kind == MeasureDistance && len(pts) == 2:
				c.Add(f.Vars().Distance(figure.Point(pts[0]), figure.Point(pts[1])), sign*m.Weight)
			case m.Kind == MeasureAngle && len(pts) == 3:
				c.Add(f.Vars().Angle(figure.Point(pts[0]), figure.Point(pts[1]), figure.Point(pts[2])), sign*m.Weight)
			case m.Kind == MeasurePi && len(pts) == 0:
				c.Add(constraint.Pi, sign*m.Weight)
			default:
				return fail(t, step, fmt.Errorf("%w: %d points in a measurement", ErrBadInputs, len(pts)))
			}
		}
		return nil
	}
	if err := add(cr.Left, 1); err != nil {
		return nil, err
	}
	if err := add(cr.Right, -1); err != nil {
		return nil, err
	}

	return c, nil
}
