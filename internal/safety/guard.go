// Package safety classifies paths as protected or unprotected against a
// static, OS-conditioned rule table. The guard is consulted for every
// deletion candidate regardless of which filter matched it; a protected
// verdict always wins over a filter match.
//
// The guard is deliberately conservative: a path that cannot be
// canonicalized is treated as protected rather than silently passed through.
package safety

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Verdict is the outcome of a protection check. Reason is set whenever
// Protected is true so that exclusions are observable, never silent.
type Verdict struct {
	Protected bool
	Reason    string
}

// Guard evaluates paths against an injected protection table. Construct one
// per process with NewGuard; the table never changes during a run.
type Guard struct {
	table Table
	home  string

	files map[string]bool
	dirs  map[string]bool
	user  map[string]bool
}

// NewGuard builds a Guard from a protection table and the user's home
// directory. Passing home explicitly keeps the guard deterministic under
// test; callers outside tests use os.UserHomeDir.
func NewGuard(table Table, home string) *Guard {
	g := &Guard{
		table: table,
		home:  filepath.Clean(home),
		files: make(map[string]bool, len(table.Files)),
		dirs:  make(map[string]bool, len(table.Dirs)),
		user:  make(map[string]bool, len(table.SensitiveUserDirs)),
	}
	for _, f := range table.Files {
		g.files[strings.ToLower(f)] = true
	}
	for _, d := range table.Dirs {
		g.dirs[strings.ToLower(d)] = true
	}
	for _, d := range table.SensitiveUserDirs {
		g.user[d] = true
	}
	return g
}

// NewDefaultGuard builds a Guard for the detected host platform.
func NewDefaultGuard() (*Guard, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return NewGuard(TableFor(DetectPlatform()), home), nil
}

// Check classifies a path. The path is canonicalized first (absolute, `..`
// collapsed, symlinks resolved) so that protection cannot be dodged through
// indirection.
func (g *Guard) Check(path string) Verdict {
	canonical, err := g.canonicalize(path)
	if err != nil {
		return Verdict{Protected: true, Reason: fmt.Sprintf("cannot canonicalize: %v", err)}
	}

	if name := strings.ToLower(filepath.Base(canonical)); g.files[name] {
		return Verdict{Protected: true, Reason: fmt.Sprintf("protected filename %q", filepath.Base(canonical))}
	}

	if top := topComponent(canonical); top != "" && g.dirs[strings.ToLower(top)] {
		return Verdict{Protected: true, Reason: fmt.Sprintf("inside protected system directory %q", top)}
	}

	if rel, err := filepath.Rel(g.home, canonical); err == nil && !strings.HasPrefix(rel, "..") && rel != "." {
		first := strings.SplitN(rel, string(filepath.Separator), 2)[0]
		if g.user[first] {
			return Verdict{Protected: true, Reason: fmt.Sprintf("inside sensitive user directory %q", first)}
		}
	}

	return Verdict{}
}

// IsProtected reports whether the path is protected from deletion.
func (g *Guard) IsProtected(path string) bool {
	return g.Check(path).Protected
}

// canonicalize resolves path to an absolute, symlink-free form. A path that
// no longer exists (it may have vanished between scan and check) is judged
// on its cleaned lexical form; any other resolution failure is surfaced so
// the caller treats the path as protected.
func (g *Guard) canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return filepath.Clean(abs), nil
		}
		return "", err
	}
	return resolved, nil
}

// topComponent returns the first path component under the filesystem root
// (or volume root on Windows), or "" for the root itself.
func topComponent(path string) string {
	rest := strings.TrimPrefix(path[len(filepath.VolumeName(path)):], string(filepath.Separator))
	if rest == "" {
		return ""
	}
	return strings.SplitN(rest, string(filepath.Separator), 2)[0]
}
