// Package trash implements the delete capability: moving files into an
// fclean-owned trash directory, or removing them permanently. Both paths
// re-verify the target immediately before acting, so an entry swapped for a
// symlink between scan and delete is refused rather than followed.
package trash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fclean/internal/plan"
	"fclean/internal/scanner"
)

// Deleter moves files into Dir, or removes them outright when asked for a
// permanent delete. It implements plan.Deleter.
type Deleter struct {
	// Dir is the trash directory. Created on first use.
	Dir string
}

// DefaultDir returns the per-user fclean trash directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".fclean", "trash"), nil
}

// Delete trashes or permanently removes one file. The entry is re-stated
// first: symlinks and anything no longer a regular file are refused with
// plan.ErrSkipped.
func (d *Deleter) Delete(rec scanner.FileRecord, permanent bool) error {
	info, err := os.Lstat(rec.Path)
	if err != nil {
		return fmt.Errorf("stat before delete: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: symlink", plan.ErrSkipped)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: no longer a regular file", plan.ErrSkipped)
	}

	if permanent {
		return os.Remove(rec.Path)
	}
	return d.moveToTrash(rec.Path)
}

// moveToTrash renames the file into the trash directory under a
// collision-safe name, falling back to copy-and-remove when the rename
// crosses filesystems.
func (d *Deleter) moveToTrash(path string) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create trash directory: %w", err)
	}

	dest := filepath.Join(d.Dir, trashName(filepath.Base(path)))
	if err := os.Rename(path, dest); err == nil {
		return nil
	}
	if err := copyFile(path, dest); err != nil {
		return fmt.Errorf("copy to trash: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove after copy: %w", err)
	}
	return nil
}

// trashName decorates the base name with a nanosecond timestamp so repeated
// deletions of same-named files never clobber each other in the trash.
func trashName(base string) string {
	return fmt.Sprintf("%s.%d", base, time.Now().UnixNano())
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
