//go:build windows

package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
)

// isHidden reports whether the entry carries the Windows hidden attribute.
// Dotfiles are also treated as hidden so that trees shared with Unix tools
// (git checkouts, WSL mounts) behave consistently.
func isHidden(path string, info fs.FileInfo) bool {
	if attrs, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		if attrs.FileAttributes&syscall.FILE_ATTRIBUTE_HIDDEN != 0 {
			return true
		}
	}
	return strings.HasPrefix(filepath.Base(path), ".")
}
