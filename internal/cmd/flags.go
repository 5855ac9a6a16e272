package cmd

import (
	"fclean/internal/filter"

	"github.com/spf13/cobra"
)

// filterFlags holds the ad-hoc filter options shared by scan and clean.
type filterFlags struct {
	olderThan   string
	newerThan   string
	largerThan  string
	smallerThan string
	patterns    []string
	extensions  []string
	skipHidden  bool
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ff.olderThan, "older-than", "o", "", "match files older than (e.g. 30d, 6m, 1y)")
	cmd.Flags().StringVar(&ff.newerThan, "newer-than", "", "match files newer than (e.g. 7d)")
	cmd.Flags().StringVarP(&ff.largerThan, "larger-than", "l", "", "match files larger than (e.g. 100MB, 1.5GB)")
	cmd.Flags().StringVarP(&ff.smallerThan, "smaller-than", "s", "", "match files smaller than (e.g. 1KB)")
	cmd.Flags().StringSliceVarP(&ff.patterns, "pattern", "p", nil, "glob patterns to match (e.g. '*.tmp')")
	cmd.Flags().StringSliceVarP(&ff.extensions, "ext", "e", nil, "file extensions to match (e.g. .log)")
	cmd.Flags().BoolVar(&ff.skipHidden, "skip-hidden", false, "skip hidden files and directories")
}

func (ff *filterFlags) specified() bool {
	return ff.olderThan != "" || ff.newerThan != "" || ff.largerThan != "" ||
		ff.smallerThan != "" || len(ff.patterns) > 0 || len(ff.extensions) > 0
}

// build parses the flag strings into a typed filter. Parse errors abort the
// command before any scanning begins.
func (ff *filterFlags) build() (filter.Filter, error) {
	var f filter.Filter
	var err error
	if ff.olderThan != "" {
		if f.MinAge, err = filter.ParseDuration(ff.olderThan); err != nil {
			return f, err
		}
	}
	if ff.newerThan != "" {
		if f.MaxAge, err = filter.ParseDuration(ff.newerThan); err != nil {
			return f, err
		}
	}
	if ff.largerThan != "" {
		if f.MinSize, err = filter.ParseSize(ff.largerThan); err != nil {
			return f, err
		}
	}
	if ff.smallerThan != "" {
		if f.MaxSize, err = filter.ParseSize(ff.smallerThan); err != nil {
			return f, err
		}
	}
	f.Patterns = ff.patterns
	f.Extensions = ff.extensions
	f.SkipHidden = ff.skipHidden
	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}
