// SPDX-License-Identifier: MIT

package angle

import (
	"github.com/katalvlaran/grace/constraint"
	"github.com/katalvlaran/grace/poset"
	"github.com/katalvlaran/grace/sparse"
)

// Ray is a half-line out of an apex node.
type Ray struct {
	Node      poset.NodeID
	LookRight bool
}

// class is one known angle at an apex.
type class struct {
	rep    sparse.Var
	r1, r2 Ray
}

// Lookuper resolves variable handles. *constraint.Registry satisfies it.
type Lookuper interface {
	Lookup(v sparse.Var) (constraint.Variable, bool)
}

// Canonicalizer maps each angle variable to its class representative.
// It shares the poset with the figure that owns it and may add nodes to it.
type Canonicalizer struct {
	vars    Lookuper
	po      *poset.Poset
	memo    map[sparse.Var]sparse.Var
	classes map[constraint.PointID][]class
}

// New returns a canonicalizer over vars and po.
func New(vars Lookuper, po *poset.Poset) *Canonicalizer {
	return &Canonicalizer{
		vars:    vars,
		po:      po,
		memo:    make(map[sparse.Var]sparse.Var),
		classes: make(map[constraint.PointID][]class),
	}
}

// Canonical returns v's representative. Non-angle variables map to
// themselves.
func (c *Canonicalizer) Canonical(v sparse.Var) sparse.Var {
	if r, ok := c.memo[v]; ok {
		return r
	}
	info, ok := c.vars.Lookup(v)
	if !ok || info.Kind != constraint.KindAngle {
		return v
	}
	p1, apex, p2 := info.Points[0], info.Points[1], info.Points[2]

	// 1. Look for an existing class at the apex
	for _, k := range c.classes[apex] {
		if c.matches(k, apex, p1, p2) {
			c.memo[v] = k.rep
			return k.rep
		}
	}

	// 2. Open a new class with v as representative
	k := class{rep: v, r1: c.ray(apex, p1), r2: c.ray(apex, p2)}
	c.classes[apex] = append(c.classes[apex], k)
	c.memo[v] = v

	return v
}

// Rays returns the two rays of v's class, creating the class if needed.
func (c *Canonicalizer) Rays(v sparse.Var) (Ray, Ray, bool) {
	rep := c.Canonical(v)
	info, ok := c.vars.Lookup(rep)
	if !ok || info.Kind != constraint.KindAngle {
		return Ray{}, Ray{}, false
	}
	for _, k := range c.classes[info.Apex()] {
		if k.rep == rep {
			return k.r1, k.r2, true
		}
	}

	return Ray{}, Ray{}, false
}

func (c *Canonicalizer) matches(k class, apex, p1, p2 constraint.PointID) bool {
	if c.on(k.r1, apex, p1) && c.on(k.r2, apex, p2) {
		return true
	}

	return c.on(k.r1, apex, p2) && c.on(k.r2, apex, p1)
}

func (c *Canonicalizer) on(r Ray, apex, p constraint.PointID) bool {
	if p == apex {
		return true
	}

	return c.po.IsOnSide(r.Node, p, r.LookRight)
}

// ray finds the ray from apex through p, or starts a fresh line for it.
func (c *Canonicalizer) ray(apex, p constraint.PointID) Ray {
	nodes := c.po.NodesOf(apex)
	if p == apex {
		// degenerate: any node of the apex will do
		if len(nodes) > 0 {
			return Ray{Node: nodes[0]}
		}
		a := c.po.NewNode(apex)
		c.po.SetNew(a, false)
		return Ray{Node: a}
	}
	for _, n := range nodes {
		if c.po.IsOnSide(n, p, false) {
			return Ray{Node: n, LookRight: false}
		}
		if c.po.IsOnSide(n, p, true) {
			return Ray{Node: n, LookRight: true}
		}
	}
	a := c.po.NewNode(apex)
	t := c.po.NewNode(p)
	c.po.Link(a, t)
	c.po.SetNew(a, false)
	c.po.SetNew(t, false)

	return Ray{Node: a, LookRight: true}
}

// Snapshot is a point-in-time copy of the memo and class tables. The
// shared poset is snapshotted by its owner.
type Snapshot struct {
	memo    map[sparse.Var]sparse.Var
	classes map[constraint.PointID][]class
}

// Snapshot captures the current tables.
func (c *Canonicalizer) Snapshot() Snapshot {
	s := Snapshot{
		memo:    make(map[sparse.Var]sparse.Var, len(c.memo)),
		classes: make(map[constraint.PointID][]class, len(c.classes)),
	}
	for k, v := range c.memo {
		s.memo[k] = v
	}
	for p, ks := range c.classes {
		s.classes[p] = append([]class(nil), ks...)
	}

	return s
}

// Restore rewinds the tables to s.
func (c *Canonicalizer) Restore(s Snapshot) {
	c.memo = make(map[sparse.Var]sparse.Var, len(s.memo))
	for k, v := range s.memo {
		c.memo[k] = v
	}
	c.classes = make(map[constraint.PointID][]class, len(s.classes))
	for p, ks := range s.classes {
		c.classes[p] = append([]class(nil), ks...)
	}
}

// Len returns how many variables have been folded so far.
func (c *Canonicalizer) Len() int { return len(c.memo) }
