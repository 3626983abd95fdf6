// SPDX-License-Identifier: MIT

package poset

import "github.com/katalvlaran/grace/constraint"

// MakeAnchor orders p and q for a shape of extent e. An existing chain that
// already contains both points is reused; otherwise two fresh finalized
// nodes are linked p→q. Unordered extents get an invalid anchor.
func (s *Poset) MakeAnchor(p, q constraint.PointID, e Extent) Anchor {
	if e == Unordered {
		return Anchor{P: None, Q: None, Extent: Unordered}
	}
	// 1. Reuse a chain through p that already sees q
	for _, n := range s.byPoint[p] {
		if m, ok := s.FindOnLeft(n, q); ok {
			return Anchor{P: n, Q: m, QOnLeft: true, Extent: e}
		}
		if m, ok := s.FindOnRight(n, q); ok {
			return Anchor{P: n, Q: m, QOnLeft: false, Extent: e}
		}
	}
	// 2. Start a new one
	pn, qn := s.NewNode(p), s.NewNode(q)
	s.Link(pn, qn)
	s.nodes[pn].New = false
	s.nodes[qn].New = false

	return Anchor{P: pn, Q: qn, QOnLeft: false, Extent: e}
}

// Place links the new node r into the shape described by a.
func (s *Poset) Place(a Anchor, r NodeID) {
	if !a.Valid() {
		return
	}
	switch a.Extent {
	case Segment:
		if a.QOnLeft {
			s.Link(a.Q, r)
			s.Link(r, a.P)
			s.Unlink(a.Q, a.P)
		} else {
			s.Link(a.P, r)
			s.Link(r, a.Q)
			s.Unlink(a.P, a.Q)
		}
	case Ray:
		if a.QOnLeft {
			s.Link(r, a.P)
		} else {
			s.Link(a.P, r)
		}
	case ComplementaryRay:
		if a.QOnLeft {
			s.Link(a.P, r)
		} else {
			s.Link(r, a.P)
		}
	}
}

// PlaceTwo links two new nodes into the shape; r is the one nearer to the
// anchor's P.
func (s *Poset) PlaceTwo(a Anchor, r, t NodeID) {
	if !a.Valid() {
		return
	}
	// towardQ: the side of P the shape extends to
	towardQ := !a.QOnLeft
	if a.Extent == ComplementaryRay {
		towardQ = !towardQ
	}
	if towardQ {
		s.Link(a.P, r)
		s.Link(r, t)
	} else {
		s.Link(t, r)
		s.Link(r, a.P)
	}
	if a.Extent != Segment {
		return
	}
	if towardQ {
		s.Link(t, a.Q)
		s.Unlink(a.P, a.Q)
	} else {
		s.Link(a.Q, t)
		s.Unlink(a.Q, a.P)
	}
}
