// SPDX-License-Identifier: MIT

package construction

import (
	"fmt"

	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/geometry"
)

// slot is one shape of an expansion; inputs come first.
type slot struct {
	geo   geometry.Shape
	label string
}

type eventKind uint8

const (
	evTrack    eventKind = iota // a line-like shape or circle was drawn
	evMeet                      // points were intersected from two shapes
	evAssume                    // a nested template's assumption
	evForce                     // a Force rule
	evConclude                  // a conclusion
)

// event is one side effect the figure must replay in order. Indices are
// positions in expansion.slots.
type event struct {
	kind  eventKind
	depth int // 0 for the template being expanded
	step  int // top-level rule that caused it

	item   int
	shape  geometry.Kind
	def    [2]int
	meet   [2]int
	points []int
	c      flatConstraint
}

// flatTerm is a measurement over slot positions; weight is signed.
type flatTerm struct {
	kind   MeasureKind
	pts    [3]int
	weight int64
}

type flatConstraint []flatTerm

// expansion is the flattened result of replaying a template.
type expansion struct {
	t       *Template
	slots   []slot
	nIn     int
	env     [][]int // rule → child → slot
	events  []event
	outputs []int
}

// newExpansion seeds an expansion with the input geometry.
func newExpansion(t *Template, inputs []geometry.Shape) (*expansion, error) {
	n := t.NumInputs()
	if len(inputs) != n {
		return nil, fail(t, -1, fmt.Errorf("%w: want %d, got %d", ErrArity, n, len(inputs)))
	}
	x := &expansion{t: t, nIn: n, env: make([][]int, len(t.Rules))}
	for i, in := range inputs {
		if in.Kind != geometry.KindPoint {
			return nil, fail(t, i, fmt.Errorf("%w: input %d is a %s", ErrBadInputs, i, in.Kind))
		}
		x.slots = append(x.slots, slot{geo: in, label: t.Rules[i].Names[0]})
		x.env[i] = []int{i}
	}

	return x, nil
}

// expand replays t over inputs. Labels of produced slots are prefixed.
func expand(t *Template, ix depgraph.Intersector, inputs []geometry.Shape, prefix string) (*expansion, error) {
	x, err := newExpansion(t, inputs)
	if err != nil {
		return nil, err
	}
	if err := x.run(ix, prefix); err != nil {
		return nil, err
	}

	return x, nil
}

// run replays every non-input rule, then records the conclusions.
func (x *expansion) run(ix depgraph.Intersector, prefix string) error {
	t := x.t
	for i := x.nIn; i < len(t.Rules); i++ {
		r := t.Rules[i]
		args, err := x.resolve(i, r.Args)
		if err != nil {
			return err
		}
		switch r.Kind {
		case RuleIntersect:
			err = x.intersect(ix, i, r, args, prefix)
		case RuleConstruction:
			err = x.nest(ix, i, r, args, prefix)
		case RuleForce:
			if r.Force == nil {
				return fail(t, i, fmt.Errorf("%w: Force without a constraint", ErrBadInputs))
			}
			c, err := x.flatten(i, *r.Force)
			if err != nil {
				return err
			}
			x.events = append(x.events, event{kind: evForce, step: i, c: c})
		case RuleOutput:
			for _, a := range args {
				if a < x.nIn {
					return fail(t, i, fmt.Errorf("%w: input %q is also an output", ErrBadInputs, x.slots[a].label))
				}
			}
			x.outputs = args
		case RuleInput:
			return fail(t, i, fmt.Errorf("%w: Input after the first step", ErrBadInputs))
		default:
			err = x.draw(i, r, args, prefix)
		}
		if err != nil {
			return err
		}
	}
	for _, cr := range t.Conclude {
		c, err := x.flatten(len(t.Rules)-1, cr)
		if err != nil {
			return err
		}
		x.events = append(x.events, event{kind: evConclude, step: len(t.Rules) - 1, c: c})
	}

	return nil
}

// resolve maps references to slot positions. Only earlier steps resolve.
func (x *expansion) resolve(step int, refs []Ref) ([]int, error) {
	out := make([]int, len(refs))
	for i, ref := range refs {
		if ref.Step < 0 || ref.Step >= step || ref.Child < 0 || ref.Child >= len(x.env[ref.Step]) {
			return nil, fail(x.t, step, fmt.Errorf("%w: %+v", ErrUnknownRef, ref))
		}
		out[i] = x.env[ref.Step][ref.Child]
	}

	return out, nil
}

func (x *expansion) push(step int, geo geometry.Shape, label string) int {
	x.slots = append(x.slots, slot{geo: geo, label: label})
	s := len(x.slots) - 1
	x.env[step] = append(x.env[step], s)

	return s
}

func (x *expansion) point(step, s int) (geometry.Point, error) {
	if x.slots[s].geo.Kind != geometry.KindPoint {
		return geometry.Point{}, fail(x.t, step,
			fmt.Errorf("%w: %q is a %s, not a point", ErrBadInputs, x.slots[s].label, x.slots[s].geo.Kind))
	}

	return x.slots[s].geo.Point(), nil
}

// draw handles the line-like and circle rules.
func (x *expansion) draw(step int, r Rule, args []int, prefix string) error {
	k, ok := primitives[r.Kind]
	if !ok || len(args) != 2 || len(r.Names) != 1 {
		return fail(x.t, step, fmt.Errorf("%w: malformed %s", ErrBadInputs, r.Kind))
	}
	a, err := x.point(step, args[0])
	if err != nil {
		return err
	}
	b, err := x.point(step, args[1])
	if err != nil {
		return err
	}
	var geo geometry.Shape
	if k == geometry.KindCircle {
		geo = geometry.NewCircle(a, b)
	} else {
		geo = geometry.Through(k, a, b)
	}
	s := x.push(step, geo, prefix+r.Names[0])
	x.events = append(x.events, event{kind: evTrack, step: step, item: s, shape: k, def: [2]int{args[0], args[1]}})

	return nil
}

// intersect keeps the first len(r.Names) meeting points.
func (x *expansion) intersect(ix depgraph.Intersector, step int, r Rule, args []int, prefix string) error {
	if len(args) != 2 || len(r.Names) == 0 {
		return fail(x.t, step, fmt.Errorf("%w: malformed Intersect", ErrBadInputs))
	}
	for _, a := range args {
		if x.slots[a].geo.Kind == geometry.KindMeasurement {
			return fail(x.t, step, fmt.Errorf("%w: cannot intersect a measurement", ErrBadInputs))
		}
	}
	pts := ix.Intersect(x.slots[args[0]].geo, x.slots[args[1]].geo)
	if len(pts) < len(r.Names) {
		return fail(x.t, step, fmt.Errorf("%w: %d of %d points", ErrTooFewOutputs, len(pts), len(r.Names)))
	}
	ev := event{kind: evMeet, step: step, meet: [2]int{args[0], args[1]}}
	for i, name := range r.Names {
		ev.points = append(ev.points, x.push(step, geometry.NewPoint(pts[i].X, pts[i].Y), prefix+name))
	}
	x.events = append(x.events, ev)

	return nil
}

// nest expands a nested template and splices its slots and events in.
func (x *expansion) nest(ix depgraph.Intersector, step int, r Rule, args []int, prefix string) error {
	if r.Template == nil {
		return fail(x.t, step, fmt.Errorf("%w: missing nested template", ErrBadInputs))
	}
	in := make([]geometry.Shape, len(args))
	for i, a := range args {
		in[i] = x.slots[a].geo
	}
	sub, err := newExpansion(r.Template, in)
	if err != nil {
		return fail(x.t, step, err)
	}
	// 1. Nested assumptions, over the nested inputs
	var assume []event
	for _, cr := range r.Template.Assume {
		c, err := sub.flatten(sub.nIn, cr)
		if err != nil {
			return fail(x.t, step, err)
		}
		assume = append(assume, event{kind: evAssume, c: c})
	}
	// 2. Geometry
	if err := sub.run(ix, prefix+r.Template.Name+"."); err != nil {
		return fail(x.t, step, err)
	}
	if len(sub.outputs) != len(r.Names) {
		return fail(x.t, step, fmt.Errorf("%w: %d names for %d outputs", ErrBadInputs, len(r.Names), len(sub.outputs)))
	}
	// 3. Splice: nested inputs are our args, the rest shifts
	offset := len(x.slots)
	remap := func(j int) int {
		if j < sub.nIn {
			return args[j]
		}
		return offset + j - sub.nIn
	}
	x.slots = append(x.slots, sub.slots[sub.nIn:]...)
	for _, ev := range append(assume, sub.events...) {
		x.events = append(x.events, ev.remap(remap, step))
	}
	for _, o := range sub.outputs {
		x.env[step] = append(x.env[step], remap(o))
	}

	return nil
}

// remap rewrites slot positions and nests the event one level deeper.
func (e event) remap(m func(int) int, step int) event {
	e.depth++
	e.step = step
	e.item = m(e.item)
	e.def = [2]int{m(e.def[0]), m(e.def[1])}
	e.meet = [2]int{m(e.meet[0]), m(e.meet[1])}
	pts := make([]int, len(e.points))
	for i, p := range e.points {
		pts[i] = m(p)
	}
	e.points = pts
	c := make(flatConstraint, len(e.c))
	for i, t := range e.c {
		t.pts = [3]int{m(t.pts[0]), m(t.pts[1]), m(t.pts[2])}
		c[i] = t
	}
	e.c = c

	return e
}

// flatten resolves a constraint rule as seen from step.
func (x *expansion) flatten(step int, cr ConstraintRule) (flatConstraint, error) {
	var out flatConstraint
	add := func(ms []MeasureRule, sign int64) error {
		for _, m := range ms {
			t := flatTerm{kind: m.Kind, weight: sign * m.Weight}
			want := 0
			switch m.Kind {
			case MeasureDistance:
				want = 2
			case MeasureAngle:
				want = 3
			}
			if len(m.Args) != want {
				return fail(x.t, step, fmt.Errorf("%w: %d points in a measurement", ErrBadInputs, len(m.Args)))
			}
			pos, err := x.resolve(step, m.Args)
			if err != nil {
				return err
			}
			for i, p := range pos {
				if _, err := x.point(step, p); err != nil {
					return err
				}
				t.pts[i] = p
			}
			out = append(out, t)
		}
		return nil
	}
	if err := add(cr.Left, 1); err != nil {
		return nil, err
	}
	if err := add(cr.Right, -1); err != nil {
		return nil, err
	}

	return out, nil
}

// produced returns the geometry of every non-input slot.
func (x *expansion) produced() []geometry.Shape {
	out := make([]geometry.Shape, 0, len(x.slots)-x.nIn)
	for _, s := range x.slots[x.nIn:] {
		out = append(out, s.geo)
	}

	return out
}

// Evaluate replays t's geometry over inputs and returns every produced
// shape in order. It makes Template a depgraph.Evaluator.
func (t *Template) Evaluate(ix depgraph.Intersector, inputs []geometry.Shape) ([]geometry.Shape, error) {
	x, err := expand(t, ix, inputs, "")
	if err != nil {
		return nil, err
	}

	return x.produced(), nil
}

// layout returns, for each rule child, its position among the produced
// shapes (inputs excluded), and the number of produced shapes. It needs
// no geometry.
func (t *Template) layout() ([][]int, int) {
	pos := make([][]int, len(t.Rules))
	n := 0
	for i, r := range t.Rules {
		switch r.Kind {
		case RuleInput, RuleForce, RuleOutput:
		case RuleConstruction:
			if r.Template == nil {
				continue
			}
			sub, total := r.Template.layout()
			for _, o := range r.Template.Outputs() {
				if o.Step < len(sub) && o.Child < len(sub[o.Step]) {
					pos[i] = append(pos[i], n+sub[o.Step][o.Child])
				}
			}
			n += total
		case RuleIntersect:
			for range r.Names {
				pos[i] = append(pos[i], n)
				n++
			}
		default:
			pos[i] = []int{n}
			n++
		}
	}

	return pos, n
}
