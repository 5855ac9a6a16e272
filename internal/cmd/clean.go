package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fclean/internal/config"
	"fclean/internal/history"
	"fclean/internal/plan"
	"fclean/internal/report"
	"fclean/internal/safety"
	"fclean/internal/trash"
)

// NewCleanCommand creates and returns the clean subcommand
func NewCleanCommand() *cobra.Command {
	var ff filterFlags
	var (
		configPath string
		execute    bool
		permanent  bool
		yes        bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "clean [directory]",
		Short: "Build a deletion plan and optionally execute it",
		Long: `Build a deletion plan from ad-hoc filter flags or a YAML rule file.

Without --execute this is a dry run: the plan is shown and nothing is
deleted. With --execute, files are moved to the fclean trash directory
(or removed outright with --permanent) after a confirmation prompt.
Protected system and user paths are excluded from every plan and
reported separately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := cleanRules(args, &ff, configPath)
			if err != nil {
				return err
			}
			return runClean(cmd, rules, cleanOptions{
				execute:   execute,
				permanent: permanent,
				yes:       yes,
				limit:     limit,
			})
		},
		SilenceUsage: true,
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML rule file")
	cmd.Flags().BoolVarP(&execute, "execute", "x", false, "actually delete files (default is dry run)")
	cmd.Flags().BoolVar(&permanent, "permanent", false, "delete permanently instead of moving to trash")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max files to show in the plan table")
	return cmd
}

type cleanOptions struct {
	execute   bool
	permanent bool
	yes       bool
	limit     int
}

// cleanRules builds the rule set from either a config file or the ad-hoc
// flags applied to a single directory argument.
func cleanRules(args []string, ff *filterFlags, configPath string) ([]plan.Rule, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return cfg.Rules()
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("specify a directory or --config")
	}
	if !ff.specified() {
		return nil, fmt.Errorf("specify at least one filter (--older-than, --larger-than, --smaller-than, --pattern, --ext)")
	}
	f, err := ff.build()
	if err != nil {
		return nil, err
	}
	return []plan.Rule{{
		Name:   "command line",
		Paths:  []string{config.ExpandPath(args[0])},
		Filter: f,
	}}, nil
}

func runClean(cmd *cobra.Command, rules []plan.Rule, opts cleanOptions) error {
	r := report.New(cmd.OutOrStdout())

	eval := plan.Evaluate(rules, time.Now())
	if len(eval.Candidates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files matched the criteria.")
		r.Errors(eval.Errors)
		return nil
	}

	guard, err := safety.NewDefaultGuard()
	if err != nil {
		return err
	}

	p := plan.Build(eval.Candidates, guard, !opts.execute)
	r.PlanSummary(p, opts.limit)
	r.Errors(eval.Errors)

	if p.DryRun || p.Count() == 0 {
		return nil
	}

	if !opts.yes && !confirm(cmd, p, opts.permanent) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	trashDir, err := trash.DefaultDir()
	if err != nil {
		return err
	}

	// One executing fclean process at a time; a second one would race on
	// the trash directory and the history database.
	lock, err := trash.NewRunLock(trashDir)
	if err != nil {
		return err
	}
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another fclean run is already executing")
	}
	defer lock.Unlock()

	deleter := &trash.Deleter{Dir: trashDir}
	result := plan.Execute(p, deleter, opts.permanent)
	r.ExecSummary(result)

	if err := recordRun(p, result, opts.permanent); err != nil {
		// History is an audit trail, not a gate: the deletions already
		// happened, so report and carry on.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not record run history: %v\n", err)
	}
	return nil
}

func confirm(cmd *cobra.Command, p *plan.Plan, permanent bool) bool {
	action := "Trash"
	if permanent {
		action = "Permanently delete"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d files (%s)? [y/N] ", action, p.Count(), report.FormatSize(p.TotalSize))

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func recordRun(p *plan.Plan, res *plan.ExecResult, permanent bool) error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(context.Background(), p, res, permanent)
}
