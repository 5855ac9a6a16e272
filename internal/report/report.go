// Package report renders scan results, plans, and duplicate groups to the
// console. Color is enabled only when writing to a terminal and is never
// part of the data; all totals come from the structures being printed.
package report

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"fclean/internal/dupes"
	"fclean/internal/history"
	"fclean/internal/plan"
	"fclean/internal/scanner"
	"fclean/internal/suggest"
)

// Reporter writes formatted output to a single destination.
type Reporter struct {
	out io.Writer

	header *color.Color
	path   *color.Color
	size   *color.Color
	dim    *color.Color
	warn   *color.Color
	good   *color.Color
	bad    *color.Color
}

// New creates a Reporter writing to w. Color output is enabled when w is a
// terminal; the color package also honors NO_COLOR.
func New(w io.Writer) *Reporter {
	r := &Reporter{
		out:    w,
		header: color.New(color.Bold),
		path:   color.New(color.FgCyan),
		size:   color.New(color.FgGreen),
		dim:    color.New(color.Faint),
		warn:   color.New(color.FgYellow),
		good:   color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
	}
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		for _, c := range []*color.Color{r.header, r.path, r.size, r.dim, r.warn, r.good, r.bad} {
			c.DisableColor()
		}
	}
	return r
}

var sizeSuffixes = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count with binary (1024-based) units, matching
// the units accepted on the filter side.
func FormatSize(n int64) string {
	size := float64(n)
	i := 0
	for size >= 1024 && i < len(sizeSuffixes)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", size, sizeSuffixes[i])
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// ScanSummary prints file and size totals plus the per-entry error count.
func (r *Reporter) ScanSummary(res *scanner.Result) {
	r.header.Fprintf(r.out, "%d files, %s total", res.FileCount(), FormatSize(res.TotalSize))
	if len(res.Errors) > 0 {
		r.dim.Fprintf(r.out, "  (%d entries skipped)", len(res.Errors))
	}
	fmt.Fprintln(r.out)
}

// FileTable prints up to limit records with size and modification time.
func (r *Reporter) FileTable(records []scanner.FileRecord, title string, limit int) {
	if title != "" {
		r.header.Fprintln(r.out, title)
	}
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}

	tw := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	var total int64
	for _, rec := range records {
		total += rec.Size
	}
	for _, rec := range records[:limit] {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n",
			r.path.Sprint(rec.Path),
			r.size.Sprint(FormatSize(rec.Size)),
			r.dim.Sprint(formatTime(rec.ModTime)))
	}
	tw.Flush()
	if limit < len(records) {
		r.dim.Fprintf(r.out, "  ... and %d more\n", len(records)-limit)
	}
	fmt.Fprintf(r.out, "  Total: %s files, %s\n",
		r.header.Sprintf("%d", len(records)), r.header.Sprint(FormatSize(total)))
}

// Exclusions prints the candidates the safety guard dropped, one reason per
// line, so protected files never vanish silently from results.
func (r *Reporter) Exclusions(excluded []plan.Exclusion) {
	if len(excluded) == 0 {
		return
	}
	r.warn.Fprintf(r.out, "Protected (excluded from plan): %d\n", len(excluded))
	for _, ex := range excluded {
		fmt.Fprintf(r.out, "  %s\t%s\n", r.path.Sprint(ex.Record.Path), r.dim.Sprint(ex.Reason))
	}
}

// Errors prints accumulated per-entry scan errors.
func (r *Reporter) Errors(errs []scanner.EntryError) {
	if len(errs) == 0 {
		return
	}
	r.dim.Fprintf(r.out, "Skipped %d entries:\n", len(errs))
	for _, e := range errs {
		r.dim.Fprintf(r.out, "  %s\n", e.Error())
	}
}

// PlanSummary prints the deletion plan and its totals.
func (r *Reporter) PlanSummary(p *plan.Plan, limit int) {
	r.FileTable(p.Entries, "Files to delete", limit)
	r.Exclusions(p.Excluded)
	if p.DryRun {
		r.warn.Fprintln(r.out, "[dry run] nothing was deleted; use --execute to act on this plan")
	}
}

// ExecSummary prints the outcome of an executed plan.
func (r *Reporter) ExecSummary(res *plan.ExecResult) {
	r.good.Fprintf(r.out, "Deleted %d files, freed %s\n", len(res.Deleted), FormatSize(res.FreedBytes))
	for _, s := range res.Skipped {
		r.warn.Fprintf(r.out, "  skipped %s\n", s.Error())
	}
	if len(res.Failed) > 0 {
		r.bad.Fprintf(r.out, "Failed to delete %d files:\n", len(res.Failed))
		for _, f := range res.Failed {
			r.bad.Fprintf(r.out, "  %s\n", f.Error())
		}
	}
}

// DuplicateReport prints duplicate groups, largest reclaimable first.
func (r *Reporter) DuplicateReport(groups []dupes.Group) {
	if len(groups) == 0 {
		r.good.Fprintln(r.out, "No duplicate files found.")
		return
	}
	var wasted int64
	for _, g := range groups {
		wasted += g.WastedBytes()
	}
	r.header.Fprintf(r.out, "%d duplicate groups, %s recoverable\n", len(groups), FormatSize(wasted))

	for i, g := range groups {
		fmt.Fprintf(r.out, "\nGroup %d: %s x %d copies\n", i+1, r.size.Sprint(FormatSize(g.Size)), g.Count())
		for _, f := range g.Files {
			fmt.Fprintf(r.out, "  %s\t%s\n", r.path.Sprint(f.Path), r.dim.Sprint(formatTime(f.ModTime)))
		}
	}
}

// SuggestTable prints suggested cleanup directories.
func (r *Reporter) SuggestTable(items []suggest.Item) {
	if len(items) == 0 {
		r.good.Fprintln(r.out, "No cleanup suggestions found.")
		return
	}
	tw := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	var total int64
	for _, item := range items {
		fmt.Fprintf(tw, "  %s\t%s\t%d files\t%s\t%s\n",
			r.header.Sprint(item.Name),
			r.path.Sprint(item.Path),
			item.FileCount,
			r.size.Sprint(FormatSize(item.Size)),
			r.dim.Sprint(item.Description))
		total += item.Size
	}
	tw.Flush()
	fmt.Fprintf(r.out, "\n  Total recoverable: %s\n", r.header.Sprint(FormatSize(total)))
}

// HistoryTable prints prior executed runs, newest first.
func (r *Reporter) HistoryTable(runs []history.Run) {
	if len(runs) == 0 {
		r.dim.Fprintln(r.out, "No executed runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	for _, run := range runs {
		mode := "trash"
		if run.Permanent {
			mode = "permanent"
		}
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d deleted\t%d failed\t%s freed\n",
			r.dim.Sprint(formatTime(run.StartedAt)),
			id,
			mode,
			run.Deleted,
			run.Failed,
			r.size.Sprint(FormatSize(run.FreedBytes)))
	}
	tw.Flush()
}
