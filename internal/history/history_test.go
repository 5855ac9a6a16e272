package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fclean/internal/plan"
	"fclean/internal/scanner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func executedPlan(id string, paths ...string) (*plan.Plan, *plan.ExecResult) {
	p := &plan.Plan{ID: id, CreatedAt: time.Now()}
	res := &plan.ExecResult{}
	for _, path := range paths {
		rec := scanner.FileRecord{Path: path, Size: 100}
		p.Entries = append(p.Entries, rec)
		res.Deleted = append(res.Deleted, rec)
		res.FreedBytes += rec.Size
	}
	return p, res
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p, res := executedPlan("run-1", "/data/a.tmp", "/data/b.tmp")
	res.Failed = append(res.Failed, plan.DeleteError{Path: "/data/c.tmp", Err: fmt.Errorf("permission denied")})

	require.NoError(t, store.RecordRun(ctx, p, res, false))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "run-1", run.ID)
	assert.False(t, run.Permanent)
	assert.Equal(t, 2, run.Deleted)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, int64(200), run.FreedBytes)
}

func TestEntriesPerRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p, res := executedPlan("run-2", "/data/b.tmp", "/data/a.tmp")
	require.NoError(t, store.RecordRun(ctx, p, res, true))

	entries, err := store.Entries(ctx, "run-2")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Ordered by path.
	assert.Equal(t, "/data/a.tmp", entries[0].Path)
	assert.Equal(t, "deleted", entries[0].Outcome)
	assert.Equal(t, int64(100), entries[0].Size)
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, res := executedPlan(fmt.Sprintf("run-%d", i), "/data/x")
		p.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.RecordRun(ctx, p, res, false))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)
}

func TestListRunsEmptyStore(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenInMemory(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	p, res := executedPlan("mem-run", "/data/a")
	require.NoError(t, store.RecordRun(context.Background(), p, res, false))
}
