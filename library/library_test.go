// SPDX-License-Identifier: MIT

package library_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/grace/construction"
	"github.com/katalvlaran/grace/figure"
	"github.com/katalvlaran/grace/library"
)

const header = "Construction \"T\"\nInput A 0 0\nInput B 1 0\nSteps\n"

func TestBundledConclusionsHold(t *testing.T) {
	r := require.New(t)
	lib, err := library.Bundled()
	r.NoError(err)
	r.Equal(4, lib.Len())

	for _, tmpl := range lib.Templates() {
		v, err := construction.Replay(figure.New(), tmpl)
		r.NoError(err, tmpl.Name)
		r.True(v.Holds(), tmpl.Name)
		r.NotEmpty(v.Conclusions, tmpl.Name)
	}
}

func TestParseStructure(t *testing.T) {
	r := require.New(t)
	lib, err := library.Bundled()
	r.NoError(err)

	eq, ok := lib.Lookup("Equilateral")
	r.True(ok)
	r.Equal(2, eq.NumInputs())
	r.Equal([]string{"equilateral triangle erected on AB"}, eq.Description)
	r.Equal(construction.RuleCircle, eq.Rules[2].Kind)
	r.Equal(construction.RuleIntersect, eq.Rules[4].Kind)
	r.Equal([]construction.Ref{{Step: 4}}, eq.Outputs())
	r.Len(eq.Conclude, 2)

	perp, ok := lib.Lookup("Perpendicular")
	r.True(ok)
	force := perp.Rules[7]
	r.Equal(construction.RuleForce, force.Kind)
	r.Equal(int64(2), force.Force.Left[0].Weight)
	r.Equal(construction.MeasurePi, force.Force.Right[0].Kind)

	apex, ok := lib.Lookup("Apex")
	r.True(ok)
	r.Same(eq, apex.Rules[2].Template)
}

func TestRoundTripIsStable(t *testing.T) {
	r := require.New(t)
	lib, err := library.Bundled()
	r.NoError(err)

	var first strings.Builder
	r.NoError(library.Print(&first, lib.Templates()...))
	again, err := library.Parse("first", first.String())
	r.NoError(err)
	var second strings.Builder
	r.NoError(library.Print(&second, again.Templates()...))

	r.Equal(first.String(), second.String())
	r.Equal(lib.Len(), again.Len())
}

func TestCommentsAnnotationsAndZero(t *testing.T) {
	r := require.New(t)
	src := `; semicolon comment
Construction "Z"   # trailing comment
Input A "apex" -1.5 2 B 0 0
Input C
Assume 0 = dist(A,B)
Steps
s = LineSegment(A, B)
Output s
Conclude angle(A B C) + angle(C,B,A) = 2 PI
`
	lib, err := library.Parse("z.grace", src)
	r.NoError(err)
	z, _ := lib.Lookup("Z")
	r.Equal(3, z.NumInputs())
	r.Equal("apex", z.Rules[0].Annotation)
	r.True(z.Rules[0].HasDefault)
	r.Equal(-1.5, z.Rules[0].X)
	r.False(z.Rules[2].HasDefault)
	r.Empty(z.Assume[0].Left)
	r.Equal(int64(2), z.Conclude[0].Right[0].Weight)

	out := library.Format(z)
	r.Contains(out, `Input A "apex" -1.5 2`)
	r.Contains(out, "Assume 0 = dist(A,B)")
	r.Contains(out, "Conclude angle(A,B,C) + angle(C,B,A) = 2*PI")
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"duplicate input", "Construction \"T\"\nInput A A\nSteps\nOutput\n", library.ErrDuplicateName},
		{"reserved PI", "Construction \"T\"\nInput PI\nSteps\nOutput\n", library.ErrDuplicateName},
		{"duplicate step name", header + "A = Circle(A, B)\nOutput A\n", library.ErrDuplicateName},
		{"unknown name", header + "c = Circle(A, X)\nOutput c\n", library.ErrUnknownName},
		{"unknown construction", header + "C = \"Nope\"(A, B)\nOutput C\n", library.ErrUnknownConstruction},
		{"recursion", header + "C = \"T\"(A, B)\nOutput C\n", library.ErrUnknownConstruction},
		{"primitive arity", header + "c = Circle(A)\nOutput c\n", library.ErrArgCount},
		{"too many names", header + "c d = Circle(A, B)\nOutput c\n", library.ErrArgCount},
		{"three intersections", header + "c = Circle(A, B)\nP Q R = Intersect(c, c)\nOutput P\n", library.ErrArgCount},
		{"measure arity", header + "s = Line(A, B)\nOutput s\nConclude dist(A) = dist(B,A)\n", library.ErrArgCount},
		{"mixed kinds", header + "s = Line(A, B)\nOutput s\nConclude dist(A,B) = angle(A,B,A)\n", library.ErrSyntax},
		{"dist with PI", header + "s = Line(A, B)\nOutput s\nConclude dist(A,B) = PI\n", library.ErrSyntax},
		{"negative weight", header + "s = Line(A, B)\nOutput s\nConclude -2*dist(A,B) = dist(B,A)\n", library.ErrSyntax},
		{"input as output", header + "s = Line(A, B)\nOutput A\n", library.ErrSyntax},
		{"missing output", header + "s = Line(A, B)\n", library.ErrSyntax},
		{"unterminated string", "Construction \"T\n", library.ErrSyntax},
		{"unknown primitive", header + "s = Parabola(A, B)\nOutput s\n", library.ErrSyntax},
		{"duplicate construction", "Construction \"T\"\nSteps\nOutput\nConstruction \"T\"\nSteps\nOutput\n", library.ErrDuplicateName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := library.Parse("t.grace", tc.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			var pe *library.ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	r := require.New(t)
	_, err := library.Parse("t.grace", header+"c = Circle(A, X)\nOutput c\n")
	var pe *library.ParseError
	r.True(errors.As(err, &pe))
	r.Equal(5, pe.Line)
	r.Equal(15, pe.Column)
	r.Equal(`t.grace:5:15: "X" is not defined`, pe.Error())
}

func TestLibraryParseIsAtomic(t *testing.T) {
	r := require.New(t)
	lib, err := library.Bundled()
	r.NoError(err)

	src := `Construction "Twice"
Input P 0 0
Input Q 3 0
Steps
X = "Equilateral"(P, Q)
Output X
Construction "Broken"
Steps
`
	_, err = lib.Parse("more.grace", src)
	r.ErrorIs(err, library.ErrSyntax)
	_, ok := lib.Lookup("Twice")
	r.False(ok)

	ts, err := lib.Parse("more.grace", src[:strings.Index(src, "Construction \"Broken\"")])
	r.NoError(err)
	r.Len(ts, 1)
	r.Equal(5, lib.Len())
	r.ErrorIs(lib.Add(ts[0]), library.ErrDuplicateName)
}
