package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlconsole/internal/testutil"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s := NewStore(testutil.NewTestLogger(t))
	require.NoError(t, s.Open(path))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, ":memory:")

	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.Record(ctx, console.Event{
		Action:   console.ActionConnect,
		DSN:      "postgres://u:xxxxx@h/db",
		Message:  "Connected. Tables loaded.",
		Duration: 15 * time.Millisecond,
		At:       base,
	}))
	require.NoError(t, s.Record(ctx, console.Event{
		Action:  console.ActionDeleteRow,
		DSN:     "postgres://u:xxxxx@h/db",
		Table:   "public.users",
		Message: "Deleted 2 row(s) from public.users",
		Deleted: 2,
		At:      base.Add(time.Minute),
	}))
	require.NoError(t, s.Record(ctx, console.Event{
		Action: console.ActionRunSQL,
		Err:    errors.New(`relation "nope" does not exist`),
		At:     base.Add(2 * time.Minute),
	}))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "run_sql", entries[0].Action)
	assert.Equal(t, `relation "nope" does not exist`, entries[0].Error)

	assert.Equal(t, "delete_row", entries[1].Action)
	assert.Equal(t, "public.users", entries[1].Table)
	assert.Equal(t, int64(2), entries[1].Deleted)

	assert.Equal(t, "connect", entries[2].Action)
	assert.Equal(t, 15*time.Millisecond, entries[2].Duration)
	assert.True(t, base.Equal(entries[2].CreatedAt))
	assert.NotEmpty(t, entries[2].ID)

	limited, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_FileJournalCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	s := openTestStore(t, path)

	version, err := s.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, s.Record(context.Background(), console.Event{Action: console.ActionConnect}))
	require.NoError(t, s.Close())

	reopened := openTestStore(t, path)
	entries, err := reopened.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_NotOpened(t *testing.T) {
	s := NewStore(nil)
	assert.Error(t, s.Record(context.Background(), console.Event{}))
	_, err := s.Recent(context.Background(), 5)
	assert.Error(t, err)
	assert.NoError(t, s.Close())
}
