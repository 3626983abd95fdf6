// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/grace/construction"
	"github.com/katalvlaran/grace/figure"
	"github.com/katalvlaran/grace/geometry"
)

// summary counts one check run.
type summary struct {
	Files  int
	Passed int
	Failed int
}

func newCheckCommand(e *env) *cobra.Command {
	var (
		bundled  bool
		failFast bool
	)

	cmd := &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Replay constructions and verify their conclusions",
		Long: `Parse the given library files and replay every construction in them
from the default positions of its inputs. A construction passes when it
draws without error and each of its conclusions follows.

Patterns are globs and may use ** to cross directories.

Examples:
  grace check geometry/*.grace
  grace check --bundled 'lib/**/*.grace'
  grace check --bundled --fail-fast`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("fail-fast") {
				e.cfg.Check.FailFast = failFast
			}
			_, err := e.check(cmd.OutOrStdout(), args, bundled || e.cfg.Check.Bundled)
			return err
		},
	}

	cmd.Flags().BoolVar(&bundled, "bundled", false, "Include the constructions shipped with grace")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failure")

	return cmd
}

// check runs one pass over patterns and reports to w.
func (e *env) check(w io.Writer, patterns []string, bundled bool) (summary, error) {
	var sum summary
	if len(patterns) == 0 && !bundled {
		return sum, errNoInput
	}

	// 1. Sources
	files, err := expand(patterns)
	if err != nil {
		return sum, err
	}
	_, units, err := parse(files, bundled)
	if err != nil {
		return sum, err
	}

	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.FgHiBlack)

	// 2. Replay every template in a fresh figure
	for _, u := range units {
		sum.Files++
		if u.err != nil {
			sum.Failed++
			fail.Fprint(w, "FAIL ")
			fmt.Fprintf(w, "%s\n     %v\n", u.file, u.err)
			if e.cfg.Check.FailFast {
				break
			}
			continue
		}
		stop := false
		for _, t := range u.templates {
			problems := e.replay(t)
			if len(problems) == 0 {
				sum.Passed++
				pass.Fprint(w, "ok   ")
				fmt.Fprint(w, t.Name)
				dim.Fprintf(w, "  %s, %d conclusions\n", u.file, len(t.Conclude))
				continue
			}
			sum.Failed++
			fail.Fprint(w, "FAIL ")
			fmt.Fprintf(w, "%s  %s\n", t.Name, u.file)
			for _, p := range problems {
				fmt.Fprintf(w, "     %s\n", p)
			}
			if e.cfg.Check.FailFast {
				stop = true
				break
			}
		}
		if stop {
			break
		}
	}

	// 3. Totals
	fmt.Fprintf(w, "\n%d passed, %d failed\n", sum.Passed, sum.Failed)
	e.log.Debug("check finished",
		zap.Int("files", sum.Files),
		zap.Int("passed", sum.Passed),
		zap.Int("failed", sum.Failed),
	)
	if sum.Failed > 0 {
		return sum, errFailures
	}

	return sum, nil
}

// replay draws t and returns why it fails, or nothing.
func (e *env) replay(t *construction.Template) []string {
	f := figure.New(
		figure.WithLogger(e.log),
		figure.WithIntersector(geometry.Analytic{Epsilon: e.cfg.Geometry.Epsilon}),
	)
	v, err := construction.Replay(f, t)
	if err != nil {
		return []string{err.Error()}
	}
	var out []string
	for i, c := range v.Conclusions {
		if !v.Hold[i] {
			out = append(out, "does not follow: "+f.Format(c))
		}
	}

	return out
}
