package plan

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"fclean/internal/safety"
	"fclean/internal/scanner"
)

// Exclusion records a candidate dropped by the safety guard together with
// the reason, so protected files are reported rather than silently missing.
type Exclusion struct {
	Record scanner.FileRecord
	Reason string
}

// Plan is the final decision artifact: the files marked for deletion, the
// candidates excluded by protection, and the aggregate totals. A plan is
// created fresh per invocation, is never persisted, and never executes
// itself.
type Plan struct {
	ID        string
	CreatedAt time.Time
	DryRun    bool

	Entries   []scanner.FileRecord
	Excluded  []Exclusion
	TotalSize int64
}

// Count returns the number of files marked for deletion.
func (p *Plan) Count() int {
	return len(p.Entries)
}

// Build runs every candidate through the safety guard and assembles the
// surviving records into a plan. Entries are sorted by path; dryRun is
// carried through unexecuted.
func Build(candidates []scanner.FileRecord, guard *safety.Guard, dryRun bool) *Plan {
	p := &Plan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		DryRun:    dryRun,
	}

	for _, rec := range candidates {
		if v := guard.Check(rec.Path); v.Protected {
			p.Excluded = append(p.Excluded, Exclusion{Record: rec, Reason: v.Reason})
			continue
		}
		p.Entries = append(p.Entries, rec)
		p.TotalSize += rec.Size
	}

	sort.Slice(p.Entries, func(i, j int) bool { return p.Entries[i].Path < p.Entries[j].Path })
	sort.Slice(p.Excluded, func(i, j int) bool { return p.Excluded[i].Record.Path < p.Excluded[j].Record.Path })
	return p
}
