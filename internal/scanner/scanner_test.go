package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestScanCollectsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("hello"))
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), []byte("world!"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	res, err := Scan(dir, Options{})
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Empty(t, res.Errors)
	assert.Equal(t, int64(11), res.TotalSize)

	// Directories are never recorded.
	for _, rec := range res.Records {
		assert.False(t, rec.IsDir)
	}

	// Records come back sorted by path.
	assert.True(t, sort.SliceIsSorted(res.Records, func(i, j int) bool {
		return res.Records[i].Path < res.Records[j].Path
	}))
}

func TestScanRecordsAreAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("x"))

	res, err := Scan(dir, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.True(t, filepath.IsAbs(res.Records[0].Path))
}

func TestScanSkipHiddenPrunesSubtrees(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "visible.txt"), []byte("x"))
	writeFile(t, filepath.Join(dir, ".hidden.txt"), []byte("x"))
	writeFile(t, filepath.Join(dir, ".git", "config"), []byte("x"))
	writeFile(t, filepath.Join(dir, ".cache", "deep", "f.txt"), []byte("x"))

	res, err := Scan(dir, Options{SkipHidden: true})
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "visible.txt", filepath.Base(res.Records[0].Path))
}

func TestScanWithoutSkipHiddenIncludesDotfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden.txt"), []byte("x"))

	res, err := Scan(dir, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.True(t, res.Records[0].Hidden)
}

func TestScanIgnoresSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	writeFile(t, target, []byte("x"))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link.txt")))

	res, err := Scan(dir, Options{})
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "real.txt", filepath.Base(res.Records[0].Path))
}

func TestScanMissingRootFails(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	require.Error(t, err)
}

func TestScanRootMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, []byte("x"))

	_, err := Scan(file, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestScanProgressCallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), []byte("12345"))
	writeFile(t, filepath.Join(dir, "b"), []byte("123"))

	var calls int
	var lastSize int64
	res, err := Scan(dir, Options{Progress: func(count int, total int64) {
		calls = count
		lastSize = total
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, res.TotalSize, lastSize)
}

func TestNewRecordSnapshotsMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, []byte("hello"))
	mtime := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	rec, err := NewRecord(path)
	require.NoError(t, err)

	assert.Equal(t, int64(5), rec.Size)
	assert.True(t, rec.ModTime.Equal(mtime))
	assert.False(t, rec.IsDir)
	assert.False(t, rec.Hidden)
}
