// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/katalvlaran/grace/construction"
	"github.com/katalvlaran/grace/library"
)

var (
	errNoInput  = errors.New("no library files given (pass patterns or --bundled)")
	errNoMatch  = errors.New("pattern matches no files")
	errFailures = errors.New("some constructions failed")
)

// unit is one parsed source: a file, or the bundled library.
type unit struct {
	file      string
	templates []*construction.Template
	err       error
}

// expand resolves glob patterns (** allowed) to files. Matches of one
// pattern are sorted; pattern order is kept so later files may use
// constructions from earlier ones.
func expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", errNoMatch, p)
		}
		sort.Strings(matches)
		for _, m := range matches {
			m = filepath.Clean(m)
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	return files, nil
}

// parse loads every file into one library. A file with an error adds
// nothing and is reported in its unit; parsing carries on with the rest.
func parse(files []string, bundled bool) (*library.Library, []unit, error) {
	lib := library.New()
	var units []unit
	if bundled {
		b, err := library.Bundled()
		if err != nil {
			return nil, nil, err
		}
		lib = b
		units = append(units, unit{file: "bundled.grace", templates: b.Templates()})
	}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			units = append(units, unit{file: file, err: err})
			continue
		}
		ts, err := lib.Parse(file, string(src))
		units = append(units, unit{file: file, templates: ts, err: err})
	}

	return lib, units, nil
}
