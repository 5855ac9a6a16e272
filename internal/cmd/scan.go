package cmd

import (
	"context"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"fclean/internal/config"
	"fclean/internal/dupes"
	"fclean/internal/report"
	"fclean/internal/scanner"
)

// NewScanCommand creates and returns the scan subcommand
func NewScanCommand() *cobra.Command {
	var ff filterFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory and report files matching criteria",
		Long: `Scan a directory tree and report the files matching the given filters.

With no filters, scan prints a full report instead: the largest files,
the oldest files, and the top duplicate groups.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, config.ExpandPath(args[0]), &ff, limit)
		},
		SilenceUsage: true,
	}

	ff.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max files to show per table")
	return cmd
}

func runScan(cmd *cobra.Command, root string, ff *filterFlags, limit int) error {
	f, err := ff.build()
	if err != nil {
		return err
	}

	res, err := scanner.Scan(root, scanner.Options{SkipHidden: ff.skipHidden})
	if err != nil {
		return err
	}

	r := report.New(cmd.OutOrStdout())
	r.ScanSummary(res)

	if ff.specified() {
		now := time.Now()
		var matched []scanner.FileRecord
		for _, rec := range res.Records {
			if f.Matches(rec, now) {
				matched = append(matched, rec)
			}
		}
		r.FileTable(matched, "Matched files", limit)
		r.Errors(res.Errors)
		return nil
	}

	// No filters: full report.
	bySize := append([]scanner.FileRecord(nil), res.Records...)
	sort.Slice(bySize, func(i, j int) bool { return bySize[i].Size > bySize[j].Size })
	r.FileTable(bySize, "Largest files", limit)

	byAge := append([]scanner.FileRecord(nil), res.Records...)
	sort.Slice(byAge, func(i, j int) bool { return byAge[i].ModTime.Before(byAge[j].ModTime) })
	r.FileTable(byAge, "Oldest files", limit)

	groups, skipped, err := dupes.Detector{}.Find(context.Background(), res.Records, 1)
	if err != nil {
		return err
	}
	if len(groups) > 10 {
		groups = groups[:10]
	}
	r.DuplicateReport(groups)
	r.Errors(append(res.Errors, skipped...))
	return nil
}
