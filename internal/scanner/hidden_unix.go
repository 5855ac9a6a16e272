//go:build !windows

package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// isHidden reports whether the entry is hidden by Unix convention: the base
// name starts with a dot.
func isHidden(path string, _ fs.FileInfo) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
