// SPDX-License-Identifier: MIT

package depgraph

import (
	"errors"

	"github.com/katalvlaran/grace/geometry"
)

// Sentinel errors.
var (
	ErrUnknownShape      = errors.New("depgraph: unknown shape")
	ErrUnknownOp         = errors.New("depgraph: unknown op")
	ErrNotPoint          = errors.New("depgraph: shape is not a point")
	ErrNotFree           = errors.New("depgraph: point is not free")
	ErrEmptyIntersection = errors.New("depgraph: shapes do not intersect")
	ErrCycleDetected     = errors.New("depgraph: cycle detected")
	ErrBadCheckpoint     = errors.New("depgraph: checkpoint is ahead of the graph")
)

// ShapeID addresses a shape.
type ShapeID int

// OpID addresses an op.
type OpID int

// OpKind enumerates the operations.
type OpKind uint8

const (
	OpFree OpKind = iota
	OpSegment
	OpRay
	OpComplementaryRay
	OpLine
	OpPerpendicularBisector
	OpCircle
	OpIntersection
	OpConstruction
	OpForce
	OpMeasure
)

// String returns the rule keyword of the op.
func (k OpKind) String() string {
	switch k {
	case OpFree:
		return "Free"
	case OpSegment:
		return "LineSegment"
	case OpRay:
		return "Ray"
	case OpComplementaryRay:
		return "CompRay"
	case OpLine:
		return "Line"
	case OpPerpendicularBisector:
		return "PerpBi"
	case OpCircle:
		return "Circle"
	case OpIntersection:
		return "Intersect"
	case OpConstruction:
		return "Construction"
	case OpForce:
		return "Force"
	case OpMeasure:
		return "Measure"
	default:
		return "unknown"
	}
}

// lineKinds maps line ops to the shape kind they produce.
var lineKinds = map[OpKind]geometry.Kind{
	OpSegment:               geometry.KindSegment,
	OpRay:                   geometry.KindRay,
	OpComplementaryRay:      geometry.KindComplementaryRay,
	OpLine:                  geometry.KindLine,
	OpPerpendicularBisector: geometry.KindPerpendicularBisector,
}

// LineOp returns the op that builds line-like kind k.
func LineOp(k geometry.Kind) (OpKind, bool) {
	for op, sk := range lineKinds {
		if sk == k {
			return op, true
		}
	}

	return 0, false
}

// Intersector computes 0, 1 or 2 intersection points. It must be pure.
type Intersector interface {
	Intersect(a, b geometry.Shape) []geometry.Point
}

// Evaluator re-derives a construction's children from its inputs,
// geometry only. The returned slice has one entry per child.
type Evaluator interface {
	Evaluate(ix Intersector, inputs []geometry.Shape) ([]geometry.Shape, error)
}

// Shape is one shape node.
type Shape struct {
	Geometry  geometry.Shape
	Label     string
	Source    OpID
	Offspring []OpID
	Valid     bool
}

// Op is one op node.
type Op struct {
	Kind       OpKind
	Parents    []ShapeID
	Children   []ShapeID
	Successful bool

	// Evaluator is set for OpConstruction.
	Evaluator Evaluator
	// Name labels construction ops.
	Name string

	mark bool
}

// Plan is the outcome of MarkAndCollectAffected.
type Plan struct {
	Point              ShapeID
	Affected           []OpID
	PreexistingFailure bool
}

// Checkpoint marks the arena sizes at one moment.
type Checkpoint struct {
	Shapes, Ops int
}

// Option configures a Graph.
type Option func(*Graph)

// WithIntersector replaces the default geometry.Analytic intersector.
func WithIntersector(ix Intersector) Option {
	return func(g *Graph) {
		if ix != nil {
			g.ix = ix
		}
	}
}

// measureKey shares measurement nodes between identical requests.
type measureKey struct {
	angle bool
	pts   [3]ShapeID
}

// Graph is the dependency DAG of one figure.
// It is not safe for concurrent use.
type Graph struct {
	shapes   []Shape
	ops      []Op
	ix       Intersector
	measures map[measureKey]ShapeID
}

// New returns an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		ix:       geometry.Analytic{},
		measures: make(map[measureKey]ShapeID),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
