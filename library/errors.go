// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrSyntax              = errors.New("library: syntax error")
	ErrDuplicateName       = errors.New("library: duplicate name")
	ErrUnknownName         = errors.New("library: unknown name")
	ErrUnknownConstruction = errors.New("library: unknown construction")
	ErrArgCount            = errors.New("library: wrong number of arguments")
)

// ParseError locates a problem in a library file.
type ParseError struct {
	File   string
	Line   int
	Column int
	Err    error // one of the sentinels
	Msg    string
}

func (e *ParseError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}

	return fmt.Sprintf("%s:%d:%d: %s", file, e.Line, e.Column, e.Msg)
}

// Unwrap returns the sentinel.
func (e *ParseError) Unwrap() error { return e.Err }
