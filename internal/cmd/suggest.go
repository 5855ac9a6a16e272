package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"fclean/internal/report"
	"fclean/internal/safety"
	"fclean/internal/suggest"
)

// NewSuggestCommand creates and returns the suggest subcommand
func NewSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest system directories worth cleaning",
		Long: `List well-known junk directories for this platform (caches, temp
files, thumbnails) that exist and contain files, with their sizes.

Suggestions are informational; use 'fclean clean <path>' to act on one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			items := suggest.Suggestions(safety.DetectPlatform(), home)
			report.New(cmd.OutOrStdout()).SuggestTable(items)
			return nil
		},
		SilenceUsage: true,
	}
}
