// Package plan turns rule matches into a safety-filtered deletion plan and
// applies finished plans through an injected delete capability. Nothing in
// this package touches the filesystem destructively; deletion mechanics live
// behind the Deleter interface.
package plan

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"fclean/internal/filter"
	"fclean/internal/scanner"
)

// Rule is the unit of configuration composition: a named filter applied to
// one or more root paths.
type Rule struct {
	Name   string
	Paths  []string
	Filter filter.Filter
}

// EvalResult is the outcome of evaluating a rule set: the deduplicated
// candidate records, per-rule match counts for reporting, and every
// per-entry error encountered along the way.
type EvalResult struct {
	Candidates []scanner.FileRecord
	Matched    map[string]int
	Errors     []scanner.EntryError
}

// Evaluate scans every rule's root paths, keeps the records matching the
// rule's filter, and unions the results by absolute path so a file matched
// by two rules appears once. A missing or unreadable root is recorded and
// skipped; it never fails the whole run. Candidates are returned sorted by
// path.
func Evaluate(rules []Rule, now time.Time) *EvalResult {
	result := &EvalResult{Matched: make(map[string]int, len(rules))}
	seen := make(map[string]scanner.FileRecord)

	for _, rule := range rules {
		for _, root := range rule.Paths {
			res, err := scanner.Scan(root, scanner.Options{SkipHidden: rule.Filter.SkipHidden})
			if err != nil {
				result.Errors = append(result.Errors, scanner.EntryError{
					Path: root,
					Err:  fmt.Errorf("rule %q: %w", rule.Name, err),
				})
				continue
			}
			result.Errors = append(result.Errors, res.Errors...)

			for _, rec := range res.Records {
				if !rule.Filter.Matches(rec, now) {
					continue
				}
				result.Matched[rule.Name]++
				seen[filepath.Clean(rec.Path)] = rec
			}
		}
	}

	result.Candidates = make([]scanner.FileRecord, 0, len(seen))
	for _, rec := range seen {
		result.Candidates = append(result.Candidates, rec)
	}
	sort.Slice(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Path < result.Candidates[j].Path
	})
	return result
}
