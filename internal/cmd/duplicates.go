package cmd

import (
	"github.com/spf13/cobra"

	"fclean/internal/config"
	"fclean/internal/dupes"
	"fclean/internal/filter"
	"fclean/internal/report"
	"fclean/internal/scanner"
)

// NewDuplicatesCommand creates and returns the duplicates subcommand
func NewDuplicatesCommand() *cobra.Command {
	var (
		minSize    string
		skipHidden bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "duplicates <directory>",
		Short: "Find byte-identical duplicate files",
		Long: `Find duplicate files under a directory.

Candidates are narrowed in three stages (size, first-4KB hash, full
content hash) so that only files agreeing in size and early content are
ever read in full. Groups are reported largest reclaimable first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			min, err := filter.ParseSize(minSize)
			if err != nil {
				return err
			}

			res, err := scanner.Scan(config.ExpandPath(args[0]), scanner.Options{SkipHidden: skipHidden})
			if err != nil {
				return err
			}

			groups, skipped, err := dupes.Detector{Workers: workers}.Find(cmd.Context(), res.Records, min)
			if err != nil {
				return err
			}

			r := report.New(cmd.OutOrStdout())
			r.DuplicateReport(groups)
			r.Errors(append(res.Errors, skipped...))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&minSize, "min-size", "1KB", "minimum file size to consider (e.g. 1KB, 1MB)")
	cmd.Flags().BoolVar(&skipHidden, "skip-hidden", false, "skip hidden files and directories")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent hashing workers (0 = default)")
	return cmd
}
