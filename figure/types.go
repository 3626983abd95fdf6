// SPDX-License-Identifier: MIT

package figure

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/grace/angle"
	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/depgraph"
	"github.com/katalvlaran/grace/nullspace"
	"github.com/katalvlaran/grace/poset"
)

// Sentinel errors.
var (
	ErrInvalidConstraint = errors.New("figure: constraint asserts PI = 0")
	ErrNotLineLike       = errors.New("figure: shape cannot be tracked")
)

// FactKind tells where a recorded constraint came from.
type FactKind uint8

const (
	Assumed   FactKind = iota // Assume
	Forced                    // Force
	Derived                   // poset, circle or bisector derivation
	Proved                    // Prove, e.g. construction conclusions
	Concluded                 // Conclude succeeded
)

// String returns the kind's name.
func (k FactKind) String() string {
	switch k {
	case Assumed:
		return "assumed"
	case Forced:
		return "forced"
	case Derived:
		return "derived"
	case Proved:
		return "proved"
	case Concluded:
		return "concluded"
	default:
		return "unknown"
	}
}

// Fact is one entry of the figure's log.
type Fact struct {
	Kind       FactKind
	Constraint *constraint.Constraint
	// Implied is true when the constraint was already known.
	Implied bool
}

// Options configures a Figure.
type Options struct {
	Logger      *zap.Logger
	Intersector depgraph.Intersector
	Reduce      bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns a no-op logger, the analytic intersector and
// content reduction on.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop(), Reduce: true}
}

// WithLogger sets the logger for debug events. nil keeps the default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithIntersector replaces the geometry.Analytic intersector.
func WithIntersector(ix depgraph.Intersector) Option {
	return func(o *Options) { o.Intersector = ix }
}

// WithContentReduction toggles gcd reduction of basis rows.
func WithContentReduction(on bool) Option {
	return func(o *Options) { o.Reduce = on }
}

// circle remembers how a circle was drawn.
type circle struct {
	centre, on depgraph.ShapeID
}

// Checkpoint captures a figure at one step.
type Checkpoint struct {
	graph depgraph.Checkpoint
	vars  int
	facts int
	basis *nullspace.Basis
	po    *poset.Poset
	canon angle.Snapshot
}

// Figure is a single-threaded editing session.
type Figure struct {
	g     *depgraph.Graph
	vars  *constraint.Registry
	po    *poset.Poset
	canon *angle.Canonicalizer
	basis *nullspace.Basis
	log   *zap.Logger

	anchors   map[depgraph.ShapeID]poset.Anchor
	circles   map[depgraph.ShapeID]circle
	bisectors map[depgraph.ShapeID][2]depgraph.ShapeID
	on        map[depgraph.ShapeID][]depgraph.ShapeID // point → shapes through it
	forced    map[depgraph.OpID]*constraint.Constraint
	facts     []Fact
}
