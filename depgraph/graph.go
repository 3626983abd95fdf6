// SPDX-License-Identifier: MIT

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/grace/geometry"
)

// Shape returns a copy of shape s.
func (g *Graph) Shape(s ShapeID) (Shape, error) {
	if !g.hasShape(s) {
		return Shape{}, fmt.Errorf("%w: %d", ErrUnknownShape, s)
	}
	sh := g.shapes[s]
	sh.Offspring = append([]OpID(nil), sh.Offspring...)

	return sh, nil
}

// Op returns a copy of op o.
func (g *Graph) Op(o OpID) (Op, error) {
	if !g.hasOp(o) {
		return Op{}, fmt.Errorf("%w: %d", ErrUnknownOp, o)
	}
	op := g.ops[o]
	op.Parents = append([]ShapeID(nil), op.Parents...)
	op.Children = append([]ShapeID(nil), op.Children...)
	op.mark = false

	return op, nil
}

// Geometry returns the current geometry of s; the zero Shape for unknown
// handles.
func (g *Graph) Geometry(s ShapeID) geometry.Shape {
	if !g.hasShape(s) {
		return geometry.Shape{}
	}

	return g.shapes[s].Geometry
}

// Label returns s's label, or "" for unknown handles.
func (g *Graph) Label(s ShapeID) string {
	if !g.hasShape(s) {
		return ""
	}

	return g.shapes[s].Label
}

// SetLabel renames s.
func (g *Graph) SetLabel(s ShapeID, label string) error {
	if !g.hasShape(s) {
		return fmt.Errorf("%w: %d", ErrUnknownShape, s)
	}
	g.shapes[s].Label = label

	return nil
}

// NumShapes returns the shape arena size.
func (g *Graph) NumShapes() int { return len(g.shapes) }

// NumOps returns the op arena size.
func (g *Graph) NumOps() int { return len(g.ops) }

// Intersector returns the graph's intersector.
func (g *Graph) Intersector() Intersector { return g.ix }

// IsPoint reports whether s is a point shape.
func (g *Graph) IsPoint(s ShapeID) bool {
	return g.hasShape(s) && g.shapes[s].Geometry.Kind == geometry.KindPoint
}

// IsFree reports whether s is a free point.
func (g *Graph) IsFree(s ShapeID) bool {
	return g.IsPoint(s) && g.ops[g.shapes[s].Source].Kind == OpFree
}

// AddFree adds a free point at (x, y).
func (g *Graph) AddFree(label string, x, y float64) ShapeID {
	op := g.newOp(OpFree, nil)
	s := g.newShape(op, label, geometry.NewPoint(x, y))

	return s
}

// AddLineLike adds a line op of kind k through points a and b.
func (g *Graph) AddLineLike(k OpKind, a, b ShapeID, label string) (ShapeID, OpID, error) {
	sk, ok := lineKinds[k]
	if !ok {
		return 0, 0, fmt.Errorf("depgraph: %s is not a line op", k)
	}
	if err := g.requirePoints(a, b); err != nil {
		return 0, 0, err
	}
	op := g.newOp(k, []ShapeID{a, b})
	pa, pb := g.shapes[a].Geometry.Point(), g.shapes[b].Geometry.Point()
	s := g.newShape(op, label, geometry.Through(sk, pa, pb))

	return s, op, nil
}

// AddCircle adds the circle about centre through on.
func (g *Graph) AddCircle(centre, on ShapeID, label string) (ShapeID, OpID, error) {
	if err := g.requirePoints(centre, on); err != nil {
		return 0, 0, err
	}
	op := g.newOp(OpCircle, []ShapeID{centre, on})
	c := geometry.NewCircle(g.shapes[centre].Geometry.Point(), g.shapes[on].Geometry.Point())
	s := g.newShape(op, label, c)

	return s, op, nil
}

// AddIntersection intersects a and b and adds one point per result.
// labels[i] names the i-th point when present.
func (g *Graph) AddIntersection(a, b ShapeID, labels []string) ([]ShapeID, OpID, error) {
	if !g.hasShape(a) {
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownShape, a)
	}
	if !g.hasShape(b) {
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownShape, b)
	}
	pts := g.ix.Intersect(g.shapes[a].Geometry, g.shapes[b].Geometry)
	if len(pts) == 0 {
		return nil, 0, ErrEmptyIntersection
	}
	op := g.newOp(OpIntersection, []ShapeID{a, b})
	out := make([]ShapeID, len(pts))
	for i, p := range pts {
		out[i] = g.newShape(op, labelAt(labels, i), geometry.NewPoint(p.X, p.Y))
	}

	return out, op, nil
}

// AddConstruction records one construction op over inputs whose children
// carry the already evaluated geometry produced.
func (g *Graph) AddConstruction(name string, ev Evaluator, inputs []ShapeID, produced []geometry.Shape, labels []string) ([]ShapeID, OpID, error) {
	for _, in := range inputs {
		if !g.hasShape(in) {
			return nil, 0, fmt.Errorf("%w: %d", ErrUnknownShape, in)
		}
	}
	op := g.newOp(OpConstruction, inputs)
	g.ops[op].Evaluator = ev
	g.ops[op].Name = name
	out := make([]ShapeID, len(produced))
	for i, sh := range produced {
		out[i] = g.newShape(op, labelAt(labels, i), sh)
	}

	return out, op, nil
}

// AddForce records a forced constraint step over the points it mentions.
func (g *Graph) AddForce(points []ShapeID) (OpID, error) {
	if err := g.requirePoints(points...); err != nil {
		return 0, err
	}

	return g.newOp(OpForce, points), nil
}

func (g *Graph) newOp(k OpKind, parents []ShapeID) OpID {
	id := OpID(len(g.ops))
	g.ops = append(g.ops, Op{Kind: k, Parents: append([]ShapeID(nil), parents...), Successful: true})
	for _, p := range parents {
		g.shapes[p].Offspring = append(g.shapes[p].Offspring, id)
	}

	return id
}

func (g *Graph) newShape(op OpID, label string, geo geometry.Shape) ShapeID {
	id := ShapeID(len(g.shapes))
	g.shapes = append(g.shapes, Shape{Geometry: geo, Label: label, Source: op, Valid: true})
	g.ops[op].Children = append(g.ops[op].Children, id)

	return id
}

func (g *Graph) requirePoints(ids ...ShapeID) error {
	for _, id := range ids {
		if !g.hasShape(id) {
			return fmt.Errorf("%w: %d", ErrUnknownShape, id)
		}
		if g.shapes[id].Geometry.Kind != geometry.KindPoint {
			return fmt.Errorf("%w: %d (%s)", ErrNotPoint, id, g.shapes[id].Geometry.Kind)
		}
	}

	return nil
}

func (g *Graph) hasShape(s ShapeID) bool { return s >= 0 && int(s) < len(g.shapes) }

func (g *Graph) hasOp(o OpID) bool { return o >= 0 && int(o) < len(g.ops) }

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}

	return ""
}
