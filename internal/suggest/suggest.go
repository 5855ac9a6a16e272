// Package suggest enumerates well-known junk directories for the host
// platform and sizes the ones that exist. The target table is static and
// OS-conditioned; nothing here deletes anything.
package suggest

import (
	"io/fs"
	"os"
	"path/filepath"

	"fclean/internal/safety"
)

// Item is one suggested cleanup target.
type Item struct {
	Name        string
	Path        string
	Description string
	Exists      bool
	Size        int64
	FileCount   int
}

type target struct {
	name string
	path string
	desc string
}

// targetsFor returns the candidate junk directories for a platform, with
// paths anchored at the given home directory.
func targetsFor(p safety.Platform, home string) []target {
	switch p {
	case safety.Windows:
		local := filepath.Join(home, "AppData", "Local")
		roaming := filepath.Join(home, "AppData", "Roaming")
		return []target{
			{"Windows Temp", filepath.Join(local, "Temp"), "Windows temporary files"},
			{"Thumbnail Cache", filepath.Join(local, "Microsoft", "Windows", "Explorer"), "Windows thumbnail cache"},
			{"Recent Files", filepath.Join(roaming, "Microsoft", "Windows", "Recent"), "Recent file shortcuts"},
			{"Crash Dumps", filepath.Join(local, "CrashDumps"), "Windows crash dump files"},
			{"Chrome Cache", filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Cache"), "Google Chrome browser cache"},
		}
	case safety.Darwin:
		caches := filepath.Join(home, "Library", "Caches")
		return []target{
			{"User Caches", caches, "Application cache files"},
			{"Temp Files", os.TempDir(), "Temporary files"},
			{"Trash", filepath.Join(home, ".Trash"), "Trash"},
			{"Chrome Cache", filepath.Join(caches, "Google", "Chrome"), "Google Chrome browser cache"},
			{"Xcode DerivedData", filepath.Join(home, "Library", "Developer", "Xcode", "DerivedData"), "Xcode build products"},
		}
	default:
		cache := filepath.Join(home, ".cache")
		return []target{
			{"User Cache", cache, "Application cache files"},
			{"Temp Files", "/tmp", "Temporary files"},
			{"Trash", filepath.Join(home, ".local", "share", "Trash"), "Trash / recycle bin"},
			{"Thumbnail Cache", filepath.Join(cache, "thumbnails"), "Image thumbnail cache"},
			{"Journal Logs", "/var/log/journal", "Systemd journal logs"},
			{"Chrome Cache", filepath.Join(cache, "google-chrome"), "Google Chrome browser cache"},
		}
	}
}

// Suggestions sizes the platform's junk directories and returns the ones
// that exist and contain at least one file.
func Suggestions(p safety.Platform, home string) []Item {
	var items []Item
	for _, t := range targetsFor(p, home) {
		item := Item{Name: t.name, Path: t.path, Description: t.desc}
		if info, err := os.Stat(t.path); err == nil && info.IsDir() {
			item.Exists = true
			item.Size, item.FileCount = dirStats(t.path)
		}
		if item.Exists && item.FileCount > 0 {
			items = append(items, item)
		}
	}
	return items
}

// dirStats totals the regular files under root, ignoring anything it cannot
// read.
func dirStats(root string) (int64, int) {
	var size int64
	var count int
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			size += info.Size()
			count++
		}
		return nil
	})
	return size, count
}
