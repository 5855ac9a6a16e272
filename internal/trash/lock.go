package trash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock guards plan execution against a second concurrent fclean process
// acting on the same trash directory.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// NewRunLock creates a lock file alongside the given trash directory.
func NewRunLock(trashDir string) (*RunLock, error) {
	dir := filepath.Dir(trashDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(dir, "run.lock")
	return &RunLock{flock: flock.New(path), path: path}, nil
}

// TryLock attempts to acquire the lock without blocking. It returns false
// when another process holds it.
func (l *RunLock) TryLock() (bool, error) {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock on %s: %w", l.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (l *RunLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock on %s: %w", l.path, err)
	}
	return nil
}
