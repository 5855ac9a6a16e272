package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileRecord is an immutable snapshot of a single filesystem entry taken at
// scan time. Path is always absolute and cleaned. Records are created once
// per scanned entry and never mutated afterwards.
type FileRecord struct {
	Path    string
	Size    int64
	ModTime time.Time
	Hidden  bool
	IsDir   bool
}

// EntryError records a per-entry failure (stat, permission, vanished path)
// encountered during a scan. Entry errors accumulate alongside results and
// never abort the enclosing operation.
type EntryError struct {
	Path string
	Err  error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e EntryError) Unwrap() error {
	return e.Err
}

// NewRecord stats a single path into a FileRecord. Symlinks are not followed:
// the record describes the link itself, so a symlink never masquerades as the
// regular file it points at.
func NewRecord(path string) (FileRecord, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Lstat(abs)
	if err != nil {
		return FileRecord{}, err
	}
	return newRecord(abs, info), nil
}

func newRecord(abs string, info fs.FileInfo) FileRecord {
	return FileRecord{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Hidden:  isHidden(abs, info),
		IsDir:   info.IsDir(),
	}
}
