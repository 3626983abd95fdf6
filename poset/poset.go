// SPDX-License-Identifier: MIT

package poset

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/grace/constraint"
)

// NewNode adds an unlinked New node for p.
func (s *Poset) NewNode(p constraint.PointID) NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, Node{Point: p, New: true})
	s.byPoint[p] = append(s.byPoint[p], id)

	return id
}

// Node returns a copy of node n.
func (s *Poset) Node(n NodeID) (Node, error) {
	if !s.has(n) {
		return Node{}, fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	nd := s.nodes[n]
	nd.Left = append([]NodeID(nil), nd.Left...)
	nd.Right = append([]NodeID(nil), nd.Right...)

	return nd, nil
}

// Len returns the arena size, deleted nodes included.
func (s *Poset) Len() int { return len(s.nodes) }

// NodesOf returns the live nodes of point p in creation order.
func (s *Poset) NodesOf(p constraint.PointID) []NodeID {
	return append([]NodeID(nil), s.byPoint[p]...)
}

// SetNew overrides the New flag of n without deriving anything.
func (s *Poset) SetNew(n NodeID, isNew bool) {
	if s.has(n) {
		s.nodes[n].New = isNew
	}
}

// Link records l immediately left of r.
func (s *Poset) Link(l, r NodeID) {
	s.nodes[l].Right = append(s.nodes[l].Right, r)
	s.nodes[r].Left = append(s.nodes[r].Left, l)
}

// Unlink removes one l→r link if present.
func (s *Poset) Unlink(l, r NodeID) {
	s.nodes[l].Right = without(s.nodes[l].Right, r)
	s.nodes[r].Left = without(s.nodes[r].Left, l)
}

// FindOnLeft searches n and everything left of it for a node of p.
func (s *Poset) FindOnLeft(n NodeID, p constraint.PointID) (NodeID, bool) {
	return s.find(n, p, false, make(map[NodeID]bool))
}

// FindOnRight searches n and everything right of it for a node of p.
func (s *Poset) FindOnRight(n NodeID, p constraint.PointID) (NodeID, bool) {
	return s.find(n, p, true, make(map[NodeID]bool))
}

// Find searches both directions from n.
func (s *Poset) Find(n NodeID, p constraint.PointID) (NodeID, bool) {
	if m, ok := s.FindOnLeft(n, p); ok {
		return m, true
	}

	return s.FindOnRight(n, p)
}

// IsOnSide reports whether p is n's point or lies on the given side of n.
func (s *Poset) IsOnSide(n NodeID, p constraint.PointID, lookRight bool) bool {
	_, ok := s.find(n, p, lookRight, make(map[NodeID]bool))
	return ok
}

func (s *Poset) find(n NodeID, p constraint.PointID, right bool, seen map[NodeID]bool) (NodeID, bool) {
	if seen[n] {
		return None, false
	}
	seen[n] = true
	if s.nodes[n].Point == p {
		return n, true
	}
	next := s.nodes[n].Left
	if right {
		next = s.nodes[n].Right
	}
	for _, m := range next {
		if r, ok := s.find(m, p, right, seen); ok {
			return r, true
		}
	}

	return None, false
}

// LeftClosure returns every node reachable leftwards from n, n excluded.
func (s *Poset) LeftClosure(n NodeID) []NodeID { return s.closure(n, false) }

// RightClosure returns every node reachable rightwards from n, n excluded.
func (s *Poset) RightClosure(n NodeID) []NodeID { return s.closure(n, true) }

func (s *Poset) closure(n NodeID, right bool) []NodeID {
	var out []NodeID
	seen := map[NodeID]bool{n: true}
	stack := []NodeID{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		next := s.nodes[cur].Left
		if right {
			next = s.nodes[cur].Right
		}
		for _, m := range next {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
			stack = append(stack, m)
		}
	}

	return out
}

// DeletePoint unlinks every node of p, relinking each (left, right)
// neighbour pair so the remaining order survives. It returns how many
// nodes were torn down.
func (s *Poset) DeletePoint(p constraint.PointID) int {
	ids := s.byPoint[p]
	for _, n := range ids {
		s.deleteNode(n)
	}
	delete(s.byPoint, p)

	return len(ids)
}

func (s *Poset) deleteNode(n NodeID) {
	nd := &s.nodes[n]
	left := append([]NodeID(nil), nd.Left...)
	right := append([]NodeID(nil), nd.Right...)
	// 1. Bridge the gap
	for _, l := range left {
		for _, r := range right {
			if !s.linked(l, r) {
				s.Link(l, r)
			}
		}
	}
	// 2. Detach n from both sides
	for _, l := range left {
		s.nodes[l].Right = without(s.nodes[l].Right, n)
	}
	for _, r := range right {
		s.nodes[r].Left = without(s.nodes[r].Left, n)
	}
	nd.Left, nd.Right = nil, nil
}

// Snapshot returns a deep copy of the poset.
func (s *Poset) Snapshot() *Poset {
	c := &Poset{
		nodes:   make([]Node, len(s.nodes)),
		byPoint: make(map[constraint.PointID][]NodeID, len(s.byPoint)),
	}
	for i, nd := range s.nodes {
		nd.Left = append([]NodeID(nil), nd.Left...)
		nd.Right = append([]NodeID(nil), nd.Right...)
		c.nodes[i] = nd
	}
	for p, ids := range s.byPoint {
		c.byPoint[p] = append([]NodeID(nil), ids...)
	}

	return c
}

// Restore makes s an independent copy of snapshot c, in place, so holders
// of s keep seeing the restored state.
func (s *Poset) Restore(c *Poset) {
	r := c.Snapshot()
	s.nodes, s.byPoint = r.nodes, r.byPoint
}

// String lists every linked node with its neighbours, for debugging.
func (s *Poset) String() string {
	var sb strings.Builder
	for i, nd := range s.nodes {
		if len(nd.Left) == 0 && len(nd.Right) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%d(#%d)", i, nd.Point)
		if nd.New {
			sb.WriteString("*")
		}
		fmt.Fprintf(&sb, " <%v >%v\n", nd.Left, nd.Right)
	}

	return sb.String()
}

func (s *Poset) linked(l, r NodeID) bool {
	for _, x := range s.nodes[l].Right {
		if x == r {
			return true
		}
	}

	return false
}

func (s *Poset) has(n NodeID) bool { return n >= 0 && int(n) < len(s.nodes) }

// without removes the first occurrence of x.
func without(ids []NodeID, x NodeID) []NodeID {
	for i, v := range ids {
		if v == x {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
