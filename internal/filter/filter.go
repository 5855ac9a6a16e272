// Package filter evaluates composable predicates (age, size, name pattern,
// extension, hidden-status) against scanned file records. Filters are
// stateless values: Matches is a pure function and a filter may be reused
// across any number of scans.
package filter

import (
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"fclean/internal/scanner"
)

// Filter is a predicate specification over FileRecord attributes. Every
// specified condition must hold for a record to match (AND across
// categories); Patterns and Extensions match if any entry matches (OR within
// the set). Zero values mean "not specified".
type Filter struct {
	// MinAge matches files whose modification time is at least this far in
	// the past. MaxAge is the symmetric upper bound.
	MinAge time.Duration
	MaxAge time.Duration

	// MinSize and MaxSize are inclusive bounds on the file size in bytes.
	MinSize int64
	MaxSize int64

	// Patterns are glob patterns matched against the base name.
	Patterns []string

	// Extensions are matched case-insensitively against the file suffix,
	// with or without a leading dot.
	Extensions []string

	// SkipHidden excludes hidden files regardless of other conditions.
	SkipHidden bool
}

// IsZero reports whether no condition is specified.
func (f Filter) IsZero() bool {
	return f.MinAge == 0 && f.MaxAge == 0 && f.MinSize == 0 && f.MaxSize == 0 &&
		len(f.Patterns) == 0 && len(f.Extensions) == 0 && !f.SkipHidden
}

// Validate checks that every glob pattern is well-formed. A bad pattern is a
// configuration mistake reported before any scanning starts.
func (f Filter) Validate() error {
	for _, p := range f.Patterns {
		if _, err := filepath.Match(p, "x"); err != nil {
			return &ParseError{Input: p, Kind: "pattern", Hint: err.Error()}
		}
	}
	return nil
}

// Matches reports whether the record satisfies every specified condition,
// evaluated against the supplied clock. Directories never match: only their
// contents are deletion candidates.
func (f Filter) Matches(r scanner.FileRecord, now time.Time) bool {
	if r.IsDir {
		return false
	}
	if f.SkipHidden && r.Hidden {
		return false
	}
	age := now.Sub(r.ModTime)
	if f.MinAge > 0 && age < f.MinAge {
		return false
	}
	if f.MaxAge > 0 && age > f.MaxAge {
		return false
	}
	if f.MinSize > 0 && r.Size < f.MinSize {
		return false
	}
	if f.MaxSize > 0 && r.Size > f.MaxSize {
		return false
	}
	if len(f.Patterns) > 0 && !matchAnyPattern(f.Patterns, filepath.Base(r.Path)) {
		return false
	}
	if len(f.Extensions) > 0 && !matchAnyExtension(f.Extensions, r.Path) {
		return false
	}
	return true
}

// matchAnyPattern reports whether name matches any glob pattern. Matching is
// case-sensitive except on Windows, following the host filesystem
// convention. Malformed patterns never match; Validate catches them first.
func matchAnyPattern(patterns []string, name string) bool {
	for _, p := range patterns {
		if runtime.GOOS == "windows" {
			p = strings.ToLower(p)
			name = strings.ToLower(name)
		}
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

func matchAnyExtension(extensions []string, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}
