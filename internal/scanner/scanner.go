// Package scanner walks directory trees and snapshots filesystem entries
// into immutable FileRecords. Scans have partial-failure semantics: per-entry
// stat and permission errors are accumulated in the result and never abort
// the walk.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Options configures a directory scan.
type Options struct {
	// SkipHidden prunes hidden files and whole hidden directories from the
	// walk, so entries under a hidden ancestor are never emitted.
	SkipHidden bool

	// Progress, if non-nil, is invoked after each recorded file with the
	// running file count and cumulative size.
	Progress func(count int, totalSize int64)
}

// Result holds the outcome of a scan: the records that could be built plus
// one EntryError per entry that could not.
type Result struct {
	Records   []FileRecord
	Errors    []EntryError
	TotalSize int64
}

// FileCount returns the number of regular files recorded.
func (r *Result) FileCount() int {
	return len(r.Records)
}

// Scan walks the tree rooted at root and returns a FileRecord for every
// regular file found. Directories and symlinks are traversed but never
// recorded as candidates. Records are sorted by path for deterministic
// output.
//
// Scan fails outright only if root itself is not an accessible directory;
// everything below that is best-effort.
func Scan(root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("access scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}

	result := &Result{}

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, EntryError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == absRoot {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			result.Errors = append(result.Errors, EntryError{Path: path, Err: err})
			return nil
		}

		if opts.SkipHidden && isHidden(path, info) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Only regular files become candidates. Symlinks are skipped here
		// and re-checked at delete time.
		if !d.Type().IsRegular() {
			return nil
		}

		rec := newRecord(path, info)
		result.Records = append(result.Records, rec)
		result.TotalSize += rec.Size
		if opts.Progress != nil {
			opts.Progress(len(result.Records), result.TotalSize)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", absRoot, walkErr)
	}

	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].Path < result.Records[j].Path
	})
	return result, nil
}
