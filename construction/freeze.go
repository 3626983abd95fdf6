// SPDX-License-Identifier: MIT

package construction

import (
	"fmt"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/figure"
)

// freezer accumulates the rules of a template being frozen.
type freezer struct {
	f     *figure.Figure
	t     *Template
	refs  map[depgraph.ShapeID]Ref
	names map[string]bool
}

// Freeze records the steps of f that derive from inputs as a template
// named name. Inputs keep their current positions as defaults. Steps that
// depend on other free points are left out. Assumptions over the inputs
// alone are carried over, and every conclusion must already follow.
func Freeze(f *figure.Figure, name string, inputs, outputs []depgraph.ShapeID, conclusions []*constraint.Constraint) (*Template, error) {
	fz := &freezer{
		f:     f,
		t:     &Template{Name: name},
		refs:  make(map[depgraph.ShapeID]Ref),
		names: make(map[string]bool),
	}
	g := f.Graph()

	// 1. Inputs
	for i, in := range inputs {
		if !g.IsFree(in) {
			return nil, fail(fz.t, i, fmt.Errorf("%w: shape %d is not a free point", ErrBadInputs, in))
		}
		p := g.Geometry(in).Point()
		fz.add(Rule{Kind: RuleInput, HasDefault: true, X: p.X, Y: p.Y}, []depgraph.ShapeID{in})
	}

	// 2. Steps, in creation order
	for o := 0; o < g.NumOps(); o++ {
		if err := fz.op(depgraph.OpID(o)); err != nil {
			return nil, err
		}
	}

	// 3. Output rule
	out := Rule{Kind: RuleOutput}
	for _, s := range outputs {
		ref, ok := fz.refs[s]
		if !ok {
			return nil, fail(fz.t, len(fz.t.Rules), fmt.Errorf("%w: output %q", ErrUnknownRef, g.Label(s)))
		}
		if fz.t.Rules[ref.Step].Kind == RuleInput {
			return nil, fail(fz.t, len(fz.t.Rules), fmt.Errorf("%w: input %q is also an output", ErrBadInputs, g.Label(s)))
		}
		out.Args = append(out.Args, ref)
		out.Names = append(out.Names, fz.t.NameOf(ref))
	}
	fz.t.Rules = append(fz.t.Rules, out)

	// 4. Assumptions over the inputs
	for _, fact := range f.Facts() {
		if fact.Kind != figure.Assumed {
			continue
		}
		if cr, ok := fz.rule(fact.Constraint, true); ok {
			fz.t.Assume = append(fz.t.Assume, cr)
		}
	}

	// 5. Conclusions
	for _, c := range conclusions {
		if !f.Follows(c) {
			return nil, fail(fz.t, -1, fmt.Errorf("%w: %s", ErrNotImplied, f.Format(c)))
		}
		cr, ok := fz.rule(c, false)
		if !ok {
			return nil, fail(fz.t, -1, fmt.Errorf("%w: conclusion %s", ErrUnknownRef, f.Format(c)))
		}
		fz.t.Conclude = append(fz.t.Conclude, cr)
	}

	return fz.t, nil
}

// add appends r with one child per shape, naming each uniquely.
func (fz *freezer) add(r Rule, children []depgraph.ShapeID) {
	step := len(fz.t.Rules)
	for i, s := range children {
		r.Names = append(r.Names, fz.name(s))
		fz.refs[s] = Ref{Step: step, Child: i}
	}
	fz.t.Rules = append(fz.t.Rules, r)
}

func (fz *freezer) name(s depgraph.ShapeID) string {
	n := fz.f.Graph().Label(s)
	if n == "" || fz.names[n] || n == "PI" {
		n = fmt.Sprintf("S%d", s)
	}
	for fz.names[n] {
		n += "_"
	}
	fz.names[n] = true

	return n
}

// op turns one graph op into a rule when all its parents resolve.
func (fz *freezer) op(o depgraph.OpID) error {
	op, err := fz.f.Graph().Op(o)
	if err != nil {
		return err
	}
	if op.Kind == depgraph.OpFree || op.Kind == depgraph.OpMeasure {
		return nil
	}
	var args []Ref
	for _, p := range op.Parents {
		ref, ok := fz.refs[p]
		if !ok {
			return nil
		}
		args = append(args, ref)
	}

	switch op.Kind {
	case depgraph.OpIntersection:
		fz.add(Rule{Kind: RuleIntersect, Args: args}, op.Children)
	case depgraph.OpConstruction:
		nested, ok := op.Evaluator.(*Template)
		if !ok {
			return fail(fz.t, len(fz.t.Rules), fmt.Errorf("%w: construction %q has no template", ErrBadInputs, op.Name))
		}
		pos, _ := nested.layout()
		var outs []depgraph.ShapeID
		for _, ref := range nested.Outputs() {
			if ref.Step >= len(pos) || ref.Child >= len(pos[ref.Step]) || pos[ref.Step][ref.Child] >= len(op.Children) {
				return fail(fz.t, len(fz.t.Rules), fmt.Errorf("%w: output of %q", ErrUnknownRef, op.Name))
			}
			outs = append(outs, op.Children[pos[ref.Step][ref.Child]])
		}
		fz.add(Rule{Kind: RuleConstruction, Args: args, Template: nested}, outs)
	case depgraph.OpForce:
		c, ok := fz.f.Forced(o)
		if !ok {
			return nil
		}
		cr, ok := fz.rule(c, false)
		if !ok {
			return nil
		}
		fz.add(Rule{Kind: RuleForce, Force: &cr}, nil)
	default:
		k, ok := Primitive(fz.f.Graph().Geometry(op.Children[0]).Kind)
		if !ok {
			return nil
		}
		fz.add(Rule{Kind: k, Args: args}, op.Children)
	}

	return nil
}

// rule converts c over recorded shapes; inputsOnly rejects anything else.
func (fz *freezer) rule(c *constraint.Constraint, inputsOnly bool) (ConstraintRule, bool) {
	var cr ConstraintRule
	for _, t := range c.Terms() {
		v, ok := fz.f.Vars().Lookup(t.Var)
		if !ok {
			return cr, false
		}
		m := MeasureRule{Weight: t.Coef}
		switch v.Kind {
		case constraint.KindDistance:
			m.Kind = MeasureDistance
		case constraint.KindAngle:
			m.Kind = MeasureAngle
		default:
			m.Kind = MeasurePi
		}
		for i := 0; i < v.Arity(); i++ {
			ref, ok := fz.refs[figure.Shape(v.Points[i])]
			if !ok || (inputsOnly && fz.t.Rules[ref.Step].Kind != RuleInput) {
				return cr, false
			}
			m.Args = append(m.Args, ref)
		}
		if m.Weight < 0 {
			m.Weight = -m.Weight
			cr.Right = append(cr.Right, m)
		} else {
			cr.Left = append(cr.Left, m)
		}
	}

	return cr, true
}
