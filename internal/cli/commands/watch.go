// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// settle is how long watch waits after the last change before re-checking.
const settle = 100 * time.Millisecond

func newWatchCommand(e *env) *cobra.Command {
	var bundled bool

	cmd := &cobra.Command{
		Use:   "watch patterns...",
		Short: "Re-check library files whenever they change",
		Long: `Run check once, then again each time a file matching one of the
patterns is written, created, renamed or removed. Stop with Ctrl+C.

Examples:
  grace watch 'lib/**/*.grace'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return e.watch(ctx, cmd.OutOrStdout(), args, bundled || e.cfg.Check.Bundled)
		},
	}

	cmd.Flags().BoolVar(&bundled, "bundled", false, "Include the constructions shipped with grace")

	return cmd
}

// watch blocks until ctx is done.
func (e *env) watch(ctx context.Context, w io.Writer, patterns []string, bundled bool) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	// 1. Watch every directory under each pattern's fixed prefix
	clean := make([]string, len(patterns))
	for i, p := range patterns {
		clean[i] = filepath.ToSlash(filepath.Clean(p))
		base, _ := doublestar.SplitPattern(clean[i])
		if err := addTree(fw, filepath.FromSlash(base)); err != nil {
			return err
		}
	}

	// 2. Event loop
	patterns = clean
	e.recheck(w, patterns, bundled)
	var due <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(fw, ev.Name); err != nil {
						e.log.Warn("failed to watch directory", zap.String("path", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			if ev.Op == fsnotify.Chmod || !matches(patterns, ev.Name) {
				continue
			}
			e.log.Debug("file changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			due = time.After(settle)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			e.log.Warn("watch error", zap.Error(err))

		case <-due:
			due = nil
			e.recheck(w, patterns, bundled)
		}
	}
}

func (e *env) recheck(w io.Writer, patterns []string, bundled bool) {
	color.New(color.FgCyan).Fprintf(w, "[%s] checking\n", time.Now().Format(time.TimeOnly))
	if _, err := e.check(w, patterns, bundled); err != nil && !errors.Is(err, errFailures) {
		color.New(color.FgRed).Fprintf(w, "%v\n", err)
	}
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}

		return nil
	})
}

func matches(patterns []string, name string) bool {
	name = filepath.ToSlash(filepath.Clean(name))
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}

	return false
}
