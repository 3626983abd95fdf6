// SPDX-License-Identifier: MIT

package library

import (
	_ "embed"
	"fmt"

	"github.com/katalvlaran/grace/construction"
)

//go:embed bundled.grace
var bundled string

// Library is an ordered set of templates with unique names.
type Library struct {
	templates []*construction.Template
	byName    map[string]*construction.Template
}

// New returns an empty library.
func New() *Library {
	return &Library{byName: make(map[string]*construction.Template)}
}

// Parse reads a library from src.
func Parse(file, src string) (*Library, error) {
	l := New()
	if _, err := l.Parse(file, src); err != nil {
		return nil, err
	}

	return l, nil
}

// Bundled returns the constructions shipped with grace.
func Bundled() (*Library, error) {
	return Parse("bundled.grace", bundled)
}

// Parse adds the templates in src, which may use templates already in l.
// Nothing is added when src has an error.
func (l *Library) Parse(file, src string) ([]*construction.Template, error) {
	tokens, err := NewLexer(src, file).ScanTokens()
	if err != nil {
		return nil, err
	}
	ts, err := NewParser(tokens, file, l.Lookup).Parse()
	if err != nil {
		return nil, err
	}
	for _, t := range ts {
		l.templates = append(l.templates, t)
		l.byName[t.Name] = t
	}

	return ts, nil
}

// Add appends t.
func (l *Library) Add(t *construction.Template) error {
	if _, dup := l.byName[t.Name]; dup {
		return fmt.Errorf("%w: construction %q", ErrDuplicateName, t.Name)
	}
	l.templates = append(l.templates, t)
	l.byName[t.Name] = t

	return nil
}

// Lookup finds a template by name.
func (l *Library) Lookup(name string) (*construction.Template, bool) {
	t, ok := l.byName[name]
	return t, ok
}

// Templates returns the templates in definition order.
func (l *Library) Templates() []*construction.Template {
	return append([]*construction.Template(nil), l.templates...)
}

// Len returns the number of templates.
func (l *Library) Len() int { return len(l.templates) }
