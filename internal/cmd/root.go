// Package cmd wires the fclean subcommands. Commands parse flags, expand
// user paths, and delegate every decision to the core packages; no filtering
// or safety logic lives here.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for fclean
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fclean",
		Short: "Clean up old, large, and duplicate files",
		Long: `fclean classifies files under one or more roots against composable
filters (age, size, name pattern, extension, hidden-status), detects
byte-identical duplicates, and builds a deletion plan.

Nothing is ever deleted without --execute, and system paths, dotfile
configs, and sensitive user directories are protected regardless of
which filters matched.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewCleanCommand())
	cmd.AddCommand(NewDuplicatesCommand())
	cmd.AddCommand(NewSuggestCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
