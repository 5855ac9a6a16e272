package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fclean/internal/scanner"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func record(path string, size int64, age time.Duration) scanner.FileRecord {
	return scanner.FileRecord{
		Path:    path,
		Size:    size,
		ModTime: now.Add(-age),
	}
}

func TestEmptyFilterMatchesFilesNotDirs(t *testing.T) {
	var f Filter
	assert.True(t, f.IsZero())

	assert.True(t, f.Matches(record("/data/a.txt", 10, time.Hour), now))
	assert.False(t, f.Matches(scanner.FileRecord{Path: "/data", IsDir: true}, now))
}

func TestMinAge(t *testing.T) {
	f := Filter{MinAge: 30 * 24 * time.Hour}

	old := record("/data/a.txt", 10, 45*24*time.Hour)
	young := record("/data/b.txt", 10, 5*24*time.Hour)

	assert.True(t, f.Matches(old, now))
	assert.False(t, f.Matches(young, now))

	// Boundary is inclusive: exactly 30 days old matches.
	exact := record("/data/c.txt", 10, 30*24*time.Hour)
	assert.True(t, f.Matches(exact, now))
}

func TestMaxAge(t *testing.T) {
	f := Filter{MaxAge: 7 * 24 * time.Hour}

	assert.True(t, f.Matches(record("/d/a", 1, 3*24*time.Hour), now))
	assert.False(t, f.Matches(record("/d/b", 1, 10*24*time.Hour), now))
}

func TestSizeBounds(t *testing.T) {
	f := Filter{MinSize: 100 << 20}

	assert.False(t, f.Matches(record("/d/small.bin", 50<<20, time.Hour), now))
	assert.True(t, f.Matches(record("/d/big.bin", 150<<20, time.Hour), now))
	// Inclusive lower bound.
	assert.True(t, f.Matches(record("/d/edge.bin", 100<<20, time.Hour), now))

	f = Filter{MaxSize: 1024}
	assert.True(t, f.Matches(record("/d/tiny", 1024, time.Hour), now))
	assert.False(t, f.Matches(record("/d/less-tiny", 1025, time.Hour), now))
}

func TestPatterns(t *testing.T) {
	f := Filter{Patterns: []string{"*.tmp", "*.log"}}

	assert.True(t, f.Matches(record("/d/build.log", 1, 0), now))
	assert.True(t, f.Matches(record("/d/x.tmp", 1, 0), now))
	assert.False(t, f.Matches(record("/d/keep.txt", 1, 0), now))

	// Patterns match the base name only, not the directory part.
	assert.False(t, f.Matches(record("/d/logs.tmp.d/keep.txt", 1, 0), now))
}

func TestPatternCharacterClass(t *testing.T) {
	f := Filter{Patterns: []string{"core.[0-9]*"}}

	assert.True(t, f.Matches(record("/d/core.1234", 1, 0), now))
	assert.False(t, f.Matches(record("/d/core.txt", 1, 0), now))
}

func TestExtensions(t *testing.T) {
	f := Filter{Extensions: []string{".log", "bak"}}

	assert.True(t, f.Matches(record("/d/a.log", 1, 0), now))
	assert.True(t, f.Matches(record("/d/a.LOG", 1, 0), now))
	assert.True(t, f.Matches(record("/d/a.bak", 1, 0), now))
	assert.False(t, f.Matches(record("/d/a.logx", 1, 0), now))
	assert.False(t, f.Matches(record("/d/log", 1, 0), now))
}

func TestSkipHidden(t *testing.T) {
	f := Filter{SkipHidden: true}

	hidden := scanner.FileRecord{Path: "/d/.secret", Hidden: true, ModTime: now}
	assert.False(t, f.Matches(hidden, now))
	assert.True(t, f.Matches(record("/d/visible", 1, 0), now))
}

func TestConditionsCombineWithAnd(t *testing.T) {
	f := Filter{
		MinAge:   24 * time.Hour,
		MinSize:  100,
		Patterns: []string{"*.tmp"},
	}

	assert.True(t, f.Matches(record("/d/old-big.tmp", 200, 48*time.Hour), now))
	assert.False(t, f.Matches(record("/d/old-small.tmp", 50, 48*time.Hour), now))
	assert.False(t, f.Matches(record("/d/old-big.txt", 200, 48*time.Hour), now))
	assert.False(t, f.Matches(record("/d/new-big.tmp", 200, time.Hour), now))
}

func TestMatchesIsDeterministic(t *testing.T) {
	f := Filter{MinAge: time.Hour, Patterns: []string{"*.log"}}
	rec := record("/d/a.log", 10, 2*time.Hour)

	first := f.Matches(rec, now)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, f.Matches(rec, now))
	}
}

func TestValidateRejectsBadPattern(t *testing.T) {
	f := Filter{Patterns: []string{"[unclosed"}}
	err := f.Validate()
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "pattern", perr.Kind)
}
