package plan

import (
	"errors"
	"fmt"

	"fclean/internal/scanner"
)

// Deleter is the injected delete capability. Implementations decide the
// mechanics (move to trash, permanent removal); the plan package only
// decides what to delete.
type Deleter interface {
	Delete(rec scanner.FileRecord, permanent bool) error
}

// ErrSkipped marks a delete refused by a safety re-check (the entry is no
// longer a regular file, or is a symlink). Deleter implementations wrap it
// so Execute can report skips separately from failures.
var ErrSkipped = errors.New("skipped")

// DeleteError records one entry the deleter could not process.
type DeleteError struct {
	Path string
	Err  error
}

func (e DeleteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e DeleteError) Unwrap() error {
	return e.Err
}

// ExecResult summarizes the application of a plan.
type ExecResult struct {
	Deleted    []scanner.FileRecord
	Skipped    []DeleteError
	Failed     []DeleteError
	FreedBytes int64
}

// Execute applies the plan through the deleter. A dry-run plan returns
// immediately with its would-be totals and the deleter is never invoked.
// Otherwise the deleter is called exactly once per entry; per-entry failures
// are recorded and processing continues with the remaining entries.
func Execute(p *Plan, d Deleter, permanent bool) *ExecResult {
	result := &ExecResult{}

	if p.DryRun {
		result.Deleted = append(result.Deleted, p.Entries...)
		result.FreedBytes = p.TotalSize
		return result
	}

	for _, rec := range p.Entries {
		err := d.Delete(rec, permanent)
		switch {
		case err == nil:
			result.Deleted = append(result.Deleted, rec)
			result.FreedBytes += rec.Size
		case errors.Is(err, ErrSkipped):
			result.Skipped = append(result.Skipped, DeleteError{Path: rec.Path, Err: err})
		default:
			result.Failed = append(result.Failed, DeleteError{Path: rec.Path, Err: err})
		}
	}
	return result
}
