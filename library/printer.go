// SPDX-License-Identifier: MIT

package library

import (
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/grace/construction"
)

// keywords maps rule kinds back to step keywords.
var keywords = func() map[construction.RuleKind]string {
	m := make(map[construction.RuleKind]string, len(primitiveRules))
	for kw, k := range primitiveRules {
		m[k] = kw
	}
	return m
}()

// Format renders t in library syntax.
func Format(t *construction.Template) string {
	var sb strings.Builder
	sb.WriteString("Construction " + quote(t.Name) + "\n")
	for _, d := range t.Description {
		sb.WriteString(quote(d) + "\n")
	}
	for _, r := range t.Rules[:t.NumInputs()] {
		sb.WriteString("Input " + r.Names[0])
		if r.Annotation != "" {
			sb.WriteString(" " + quote(r.Annotation))
		}
		if r.HasDefault {
			sb.WriteString(" " + number(r.X) + " " + number(r.Y))
		}
		sb.WriteByte('\n')
	}
	for _, cr := range t.Assume {
		sb.WriteString("Assume " + formatConstraint(t, cr) + "\n")
	}
	sb.WriteString("Steps\n")
	for _, r := range t.Rules[t.NumInputs():] {
		switch r.Kind {
		case construction.RuleOutput:
			sb.WriteString(strings.TrimRight("Output "+strings.Join(r.Names, " "), " ") + "\n")
		case construction.RuleForce:
			if r.Force != nil {
				sb.WriteString("Force " + formatConstraint(t, *r.Force) + "\n")
			}
		default:
			head := keywords[r.Kind]
			if r.Kind == construction.RuleConstruction && r.Template != nil {
				head = quote(r.Template.Name)
			}
			args := make([]string, len(r.Args))
			for i, a := range r.Args {
				args[i] = t.NameOf(a)
			}
			sb.WriteString(strings.Join(r.Names, " ") + " = " + head + "(" + strings.Join(args, ", ") + ")\n")
		}
	}
	for _, cr := range t.Conclude {
		sb.WriteString("Conclude " + formatConstraint(t, cr) + "\n")
	}

	return sb.String()
}

// Print writes every template to w, separated by blank lines.
func Print(w io.Writer, ts ...*construction.Template) error {
	for i, t := range ts {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, Format(t)); err != nil {
			return err
		}
	}

	return nil
}

func formatConstraint(t *construction.Template, cr construction.ConstraintRule) string {
	return formatSide(t, cr.Left) + " = " + formatSide(t, cr.Right)
}

func formatSide(t *construction.Template, ms []construction.MeasureRule) string {
	if len(ms) == 0 {
		return "0"
	}
	terms := make([]string, len(ms))
	for i, m := range ms {
		var sb strings.Builder
		if m.Weight != 1 {
			sb.WriteString(strconv.FormatInt(m.Weight, 10) + "*")
		}
		switch m.Kind {
		case construction.MeasureDistance:
			sb.WriteString(kwDist)
		case construction.MeasureAngle:
			sb.WriteString(kwAngle)
		default:
			sb.WriteString(kwPi)
			terms[i] = sb.String()
			continue
		}
		names := make([]string, len(m.Args))
		for j, a := range m.Args {
			names[j] = t.NameOf(a)
		}
		sb.WriteString("(" + strings.Join(names, ",") + ")")
		terms[i] = sb.String()
	}

	return strings.Join(terms, " + ")
}

func number(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
