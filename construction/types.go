// SPDX-License-Identifier: MIT

package construction

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/grace/geometry"
)

// Sentinel errors.
var (
	ErrArity            = errors.New("construction: wrong number of inputs")
	ErrAssumptionNotMet = errors.New("construction: assumption does not follow")
	ErrBadInputs        = errors.New("construction: bad inputs")
	ErrTooFewOutputs    = errors.New("construction: step produced too few shapes")
	ErrUnknownRef       = errors.New("construction: reference cannot be resolved")
	ErrNotImplied       = errors.New("construction: conclusion does not follow")
)

// Error reports where a template failed.
type Error struct {
	Template string
	Step     int // rule index, -1 for whole-template checks
	Reason   error
}

func (e *Error) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("construction %q: %v", e.Template, e.Reason)
	}

	return fmt.Sprintf("construction %q step %d: %v", e.Template, e.Step, e.Reason)
}

// Unwrap returns the reason.
func (e *Error) Unwrap() error { return e.Reason }

func fail(t *Template, step int, reason error) error {
	return &Error{Template: t.Name, Step: step, Reason: reason}
}

// RuleKind enumerates template steps.
type RuleKind uint8

const (
	RuleInput RuleKind = iota
	RuleSegment
	RuleRay
	RuleComplementaryRay
	RuleLine
	RulePerpendicularBisector
	RuleCircle
	RuleIntersect
	RuleConstruction
	RuleForce
	RuleOutput
)

// primitives maps shape-drawing rules to the kind they draw.
var primitives = map[RuleKind]geometry.Kind{
	RuleSegment:               geometry.KindSegment,
	RuleRay:                   geometry.KindRay,
	RuleComplementaryRay:      geometry.KindComplementaryRay,
	RuleLine:                  geometry.KindLine,
	RulePerpendicularBisector: geometry.KindPerpendicularBisector,
	RuleCircle:                geometry.KindCircle,
}

// String returns the keyword used in library files.
func (k RuleKind) String() string {
	switch k {
	case RuleInput:
		return "Input"
	case RuleIntersect:
		return "Intersect"
	case RuleConstruction:
		return "Construction"
	case RuleForce:
		return "Force"
	case RuleOutput:
		return "Output"
	}
	if sk, ok := primitives[k]; ok {
		return sk.String()
	}

	return "unknown"
}

// Primitive returns the rule that draws shape kind sk.
func Primitive(sk geometry.Kind) (RuleKind, bool) {
	for k, v := range primitives {
		if v == sk {
			return k, true
		}
	}

	return 0, false
}

// Ref names child Child of rule Step.
type Ref struct {
	Step, Child int
}

// Rule is one template step.
type Rule struct {
	Kind  RuleKind
	Args  []Ref
	Names []string // one per child; Output lists the exported names

	// Template is the nested template of a RuleConstruction.
	Template *Template
	// Force is the constraint of a RuleForce.
	Force *ConstraintRule

	// Input rules may carry an annotation and default coordinates.
	Annotation string
	HasDefault bool
	X, Y       float64
}

// MeasureKind enumerates measurement terms.
type MeasureKind uint8

const (
	MeasureDistance MeasureKind = iota
	MeasureAngle
	MeasurePi
)

// MeasureRule is one weighted term of a ConstraintRule.
type MeasureRule struct {
	Kind   MeasureKind
	Args   []Ref // 2 for distances, 3 for angles, none for PI
	Weight int64 // positive
}

// ConstraintRule is sum(Left) = sum(Right); an empty side is 0.
type ConstraintRule struct {
	Left, Right []MeasureRule
}

// Template is a reusable construction.
type Template struct {
	Name        string
	Description []string
	Rules       []Rule
	Assume      []ConstraintRule
	Conclude    []ConstraintRule
}

// NumInputs counts the leading Input rules.
func (t *Template) NumInputs() int {
	n := 0
	for n < len(t.Rules) && t.Rules[n].Kind == RuleInput {
		n++
	}

	return n
}

// Outputs returns the Output rule's references.
func (t *Template) Outputs() []Ref {
	if len(t.Rules) == 0 || t.Rules[len(t.Rules)-1].Kind != RuleOutput {
		return nil
	}

	return t.Rules[len(t.Rules)-1].Args
}

// Children returns how many shapes rule i yields.
func (t *Template) Children(i int) int {
	r := t.Rules[i]
	switch r.Kind {
	case RuleForce, RuleOutput:
		return 0
	case RuleConstruction:
		if r.Template == nil {
			return 0
		}
		return len(r.Template.Outputs())
	case RuleIntersect:
		return len(r.Names)
	default:
		return 1
	}
}

// NameOf returns the name given to ref, or "" when out of range.
func (t *Template) NameOf(ref Ref) string {
	if ref.Step < 0 || ref.Step >= len(t.Rules) {
		return ""
	}
	names := t.Rules[ref.Step].Names
	if ref.Child < 0 || ref.Child >= len(names) {
		return ""
	}

	return names[ref.Child]
}

// Option configures Instantiate and Replay.
type Option func(*options)

type options struct {
	prefix bool
}

// WithPrefixedLabels toggles labelling intermediates "<Template>.<name>".
// On by default.
func WithPrefixedLabels(on bool) Option {
	return func(o *options) { o.prefix = on }
}
