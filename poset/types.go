// SPDX-License-Identifier: MIT

package poset

import (
	"errors"

	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/sparse"
)

// ErrUnknownNode is returned for a NodeID outside the arena.
var ErrUnknownNode = errors.New("poset: unknown node")

// NodeID addresses a node in the arena.
type NodeID int

// None is the zero Anchor slot.
const None NodeID = -1

// Node is one point's position on one line.
type Node struct {
	Point constraint.PointID
	Left  []NodeID // immediate left neighbours
	Right []NodeID // immediate right neighbours

	// New nodes are ignored (looked through) when deriving constraints.
	New bool
}

// Extent is the part of a line a shape covers, which decides where
// intersection points are linked in.
type Extent uint8

const (
	Unordered        Extent = iota // line, perpendicular bisector
	Segment                        // between P and Q
	Ray                            // from P through Q
	ComplementaryRay               // from P away from Q
)

// Anchor ties a line-like shape to the poset.
type Anchor struct {
	P, Q    NodeID
	QOnLeft bool // Q lies to the left of P
	Extent  Extent
}

// Valid reports whether the anchor carries order information.
func (a Anchor) Valid() bool { return a.Extent != Unordered && a.P != None && a.Q != None }

// Distancer allocates distance variables. *constraint.Registry satisfies it.
type Distancer interface {
	Distance(p, q constraint.PointID) sparse.Var
}

// Poset is the arena of order nodes for one figure.
// It is not safe for concurrent use.
type Poset struct {
	nodes   []Node
	byPoint map[constraint.PointID][]NodeID
}

// New returns an empty poset.
func New() *Poset {
	return &Poset{byPoint: make(map[constraint.PointID][]NodeID)}
}
