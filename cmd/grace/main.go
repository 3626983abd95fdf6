// SPDX-License-Identifier: MIT

// Command grace checks geometric construction libraries.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/katalvlaran/grace/internal/cli/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
