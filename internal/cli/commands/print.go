// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/grace/construction"
	"github.com/katalvlaran/grace/library"
)

func newPrintCommand(e *env) *cobra.Command {
	var (
		bundled bool
		names   []string
	)

	cmd := &cobra.Command{
		Use:   "print [patterns...]",
		Short: "Print library files in canonical form",
		Long: `Parse the given library files and print their constructions back in
canonical form: one input per line, normalised spacing, comments dropped.
The output parses to the same constructions.

Examples:
  grace print lib/basic.grace
  grace print --bundled --name Equilateral`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundled = bundled || e.cfg.Check.Bundled
			if len(args) == 0 && !bundled {
				return errNoInput
			}
			files, err := expand(args)
			if err != nil {
				return err
			}
			lib, units, err := parse(files, bundled)
			if err != nil {
				return err
			}
			for _, u := range units {
				if u.err != nil {
					return u.err
				}
			}

			ts, err := pick(lib, names)
			if err != nil {
				return err
			}

			return library.Print(cmd.OutOrStdout(), ts...)
		},
	}

	cmd.Flags().BoolVar(&bundled, "bundled", false, "Include the constructions shipped with grace")
	cmd.Flags().StringSliceVar(&names, "name", nil, "Print only the named constructions")

	return cmd
}

func pick(lib *library.Library, names []string) ([]*construction.Template, error) {
	if len(names) == 0 {
		return lib.Templates(), nil
	}
	ts := make([]*construction.Template, 0, len(names))
	for _, n := range names {
		t, ok := lib.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", library.ErrUnknownConstruction, n)
		}
		ts = append(ts, t)
	}

	return ts, nil
}
