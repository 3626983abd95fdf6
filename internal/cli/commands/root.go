// SPDX-License-Identifier: MIT

// Package commands holds the grace command tree.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/grace/internal/cli/config"
)

// env is what every subcommand shares once the root has loaded config.
type env struct {
	configFile string
	noColor    bool

	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	e := &env{}
	rootCmd := &cobra.Command{
		Use:   "grace",
		Short: "Geometric construction checker",
		Long: color.CyanString(`grace - geometric construction engine

grace reads construction libraries, draws every construction from the
default positions of its inputs and checks that its conclusions follow
from the facts derived along the way.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&e.configFile, "config", "", "config file (default ./grace.yaml or $HOME/.config/grace/grace.yaml)")
	rootCmd.PersistentFlags().BoolVar(&e.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newCheckCommand(e))
	rootCmd.AddCommand(newWatchCommand(e))
	rootCmd.AddCommand(newPrintCommand(e))

	return rootCmd
}

func (e *env) load() error {
	cfg, err := config.Load(e.configFile)
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	if e.noColor || !cfg.Check.Color {
		color.NoColor = true
	}
	e.cfg, e.log = cfg, log

	return nil
}
