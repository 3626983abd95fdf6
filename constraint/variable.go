// SPDX-License-Identifier: MIT

package constraint

import (
	"fmt"

	"github.com/katalvlaran/grace/sparse"
)

// PointID identifies a point of a figure. The registry never interprets it
// beyond equality and ordering.
type PointID int

// Kind enumerates the measurement kinds a Variable can stand for.
type Kind uint8

const (
	KindPi       Kind = iota // the constant π
	KindDistance             // dist(p, q)
	KindAngle                // angle(p1, apex, p2)
)

// String returns the rule keyword used by the library grammar.
func (k Kind) String() string {
	switch k {
	case KindPi:
		return "PI"
	case KindDistance:
		return "dist"
	case KindAngle:
		return "angle"
	default:
		return "unknown"
	}
}

// Pi is the reserved handle of the constant π in every Registry.
const Pi sparse.Var = 0

// Variable describes what a handle measures.
// Distance uses Points[0..1]; Angle uses Points[0]=p1, Points[1]=apex,
// Points[2]=p2.
type Variable struct {
	Kind   Kind
	Points [3]PointID
}

// Apex returns the apex of an angle variable.
func (v Variable) Apex() PointID { return v.Points[1] }

// Arity returns how many points the variable refers to.
func (v Variable) Arity() int {
	switch v.Kind {
	case KindDistance:
		return 2
	case KindAngle:
		return 3
	default:
		return 0
	}
}

// key folds the symmetric spellings of one measurement together.
func (v Variable) key() Variable {
	switch v.Kind {
	case KindDistance:
		p, q := v.Points[0], v.Points[1]
		if q < p {
			p, q = q, p
		}
		return Variable{Kind: KindDistance, Points: [3]PointID{p, q, 0}}
	case KindAngle:
		p1, p2 := v.Points[0], v.Points[2]
		if p2 < p1 {
			p1, p2 = p2, p1
		}
		return Variable{Kind: KindAngle, Points: [3]PointID{p1, v.Points[1], p2}}
	default:
		return Variable{Kind: KindPi}
	}
}

// Namer renders variable handles for humans.
type Namer interface {
	Name(v sparse.Var) string
}

// Registry allocates and caches measurement variables.
// It is not safe for concurrent use.
type Registry struct {
	vars  []Variable              // handle → variable, as first requested
	index map[Variable]sparse.Var // canonical key → handle
	label func(PointID) string    // point naming for Name
}

// NewRegistry returns a registry whose handle 0 is π. label names points
// when rendering; nil falls back to "#<id>".
func NewRegistry(label func(PointID) string) *Registry {
	if label == nil {
		label = func(p PointID) string { return fmt.Sprintf("#%d", p) }
	}
	pi := Variable{Kind: KindPi}

	return &Registry{
		vars:  []Variable{pi},
		index: map[Variable]sparse.Var{pi: Pi},
		label: label,
	}
}

// Distance returns the handle of dist(p, q), allocating it on first use.
func (r *Registry) Distance(p, q PointID) sparse.Var {
	return r.intern(Variable{Kind: KindDistance, Points: [3]PointID{p, q, 0}})
}

// Angle returns the handle of angle(p1, apex, p2), allocating it on first
// use. angle(p2, apex, p1) shares the handle.
func (r *Registry) Angle(p1, apex, p2 PointID) sparse.Var {
	return r.intern(Variable{Kind: KindAngle, Points: [3]PointID{p1, apex, p2}})
}

func (r *Registry) intern(v Variable) sparse.Var {
	k := v.key()
	if h, ok := r.index[k]; ok {
		return h
	}
	h := sparse.Var(len(r.vars))
	r.vars = append(r.vars, v)
	r.index[k] = h

	return h
}

// Lookup returns the variable behind handle h.
func (r *Registry) Lookup(h sparse.Var) (Variable, bool) {
	if h < 0 || int(h) >= len(r.vars) {
		return Variable{}, false
	}

	return r.vars[h], true
}

// Len returns the number of allocated handles, π included.
func (r *Registry) Len() int { return len(r.vars) }

// Truncate forgets every handle >= n. Used when a figure rolls back and
// the points those variables measured no longer exist. n < 1 keeps π.
func (r *Registry) Truncate(n int) {
	if n < 1 {
		n = 1
	}
	if n >= len(r.vars) {
		return
	}
	for _, v := range r.vars[n:] {
		delete(r.index, v.key())
	}
	r.vars = r.vars[:n]
}

// Name renders h as dist(A,B), angle(A,B,C) or PI.
func (r *Registry) Name(h sparse.Var) string {
	v, ok := r.Lookup(h)
	if !ok {
		return fmt.Sprintf("x%d", h)
	}
	switch v.Kind {
	case KindDistance:
		return fmt.Sprintf("dist(%s,%s)", r.label(v.Points[0]), r.label(v.Points[1]))
	case KindAngle:
		return fmt.Sprintf("angle(%s,%s,%s)", r.label(v.Points[0]), r.label(v.Points[1]), r.label(v.Points[2]))
	default:
		return "PI"
	}
}
