package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeAged(t *testing.T, path string, content []byte, age time.Duration) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestScanWithAgeFilter(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "a.txt"), []byte("old"), 45*24*time.Hour)
	writeAged(t, filepath.Join(dir, "b.txt"), []byte("new"), 5*24*time.Hour)

	out, err := runCommand(t, "scan", dir, "--older-than", "30d")
	require.NoError(t, err)

	assert.Contains(t, out, "a.txt")
	assert.NotContains(t, out, "b.txt")
	assert.Contains(t, out, "Matched files")
}

func TestScanWithSizeFilter(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "small.bin"), bytes.Repeat([]byte("s"), 100), time.Hour)
	writeAged(t, filepath.Join(dir, "large.bin"), bytes.Repeat([]byte("L"), 5000), time.Hour)

	out, err := runCommand(t, "scan", dir, "--larger-than", "1KB")
	require.NoError(t, err)

	assert.Contains(t, out, "large.bin")
	assert.NotContains(t, out, "small.bin")
}

func TestScanWithPattern(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "junk.tmp"), []byte("x"), time.Hour)
	writeAged(t, filepath.Join(dir, "keep.txt"), []byte("x"), time.Hour)

	out, err := runCommand(t, "scan", dir, "--pattern", "*.tmp")
	require.NoError(t, err)

	assert.Contains(t, out, "junk.tmp")
	assert.NotContains(t, out, "keep.txt")
}

func TestScanNoFiltersFullReport(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("d"), 2048)
	writeAged(t, filepath.Join(dir, "copy1.bin"), content, time.Hour)
	writeAged(t, filepath.Join(dir, "copy2.bin"), content, time.Hour)

	out, err := runCommand(t, "scan", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Largest files")
	assert.Contains(t, out, "Oldest files")
	assert.Contains(t, out, "duplicate groups")
}

func TestScanBadAgeStringFailsBeforeScanning(t *testing.T) {
	_, err := runCommand(t, "scan", t.TempDir(), "--older-than", "30days")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "30days")
}

func TestScanMissingDirectoryFails(t *testing.T) {
	_, err := runCommand(t, "scan", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
