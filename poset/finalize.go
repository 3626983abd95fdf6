// SPDX-License-Identifier: MIT

package poset

import "github.com/katalvlaran/grace/constraint"

// Finalize clears n's New flag and returns the betweenness constraints that
// involve n. Callers test each one before recording it; many are usually
// implied already.
func (s *Poset) Finalize(n NodeID, d Distancer) []*constraint.Constraint {
	s.nodes[n].New = false
	q := s.nodes[n].Point

	left := s.settled(n, false)
	right := s.settled(n, true)

	var out []*constraint.Constraint
	// 1. L < Q < R
	for _, l := range left {
		for _, r := range right {
			out = appendBetween(out, d, s.nodes[l].Point, q, s.nodes[r].Point)
		}
	}
	// 2. A <* L < Q
	for _, l := range left {
		for _, a := range s.LeftClosure(l) {
			out = appendBetween(out, d, s.nodes[a].Point, s.nodes[l].Point, q)
		}
	}
	// 3. Q < R <* B
	for _, r := range right {
		for _, b := range s.RightClosure(r) {
			out = appendBetween(out, d, q, s.nodes[r].Point, s.nodes[b].Point)
		}
	}

	return out
}

// settled returns the nearest non-new nodes on one side of n, looking
// through chains of new nodes. Each node appears once.
func (s *Poset) settled(n NodeID, right bool) []NodeID {
	var out []NodeID
	seen := map[NodeID]bool{n: true}
	var walk func(m NodeID)
	walk = func(m NodeID) {
		next := s.nodes[m].Left
		if right {
			next = s.nodes[m].Right
		}
		for _, x := range next {
			if seen[x] {
				continue
			}
			seen[x] = true
			if s.nodes[x].New {
				walk(x)
			} else {
				out = append(out, x)
			}
		}
	}
	walk(n)

	return out
}

// Between builds dist(a,m) + dist(m,b) = dist(a,b).
func Between(d Distancer, a, m, b constraint.PointID) *constraint.Constraint {
	return constraint.New().
		Add(d.Distance(a, m), 1).
		Add(d.Distance(m, b), 1).
		Add(d.Distance(a, b), -1)
}

func appendBetween(out []*constraint.Constraint, d Distancer, a, m, b constraint.PointID) []*constraint.Constraint {
	if a == m || m == b || a == b {
		return out
	}

	return append(out, Between(d, a, m, b))
}
