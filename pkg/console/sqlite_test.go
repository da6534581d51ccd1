package console

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlconsole/internal/testutil"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/sqlconsole/pkg/adapters/sqlite"
)

// seedSQLite creates a database file with a users table and returns its URL.
func seedSQLite(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "console.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, stmt := range append([]string{"CREATE TABLE users (id INTEGER, name TEXT, email TEXT)"}, stmts...) {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return "sqlite://" + path
}

func TestSQLite_BrowseAndDelete(t *testing.T) {
	ctx := context.Background()
	url := seedSQLite(t,
		"CREATE TABLE audit (id INTEGER)",
		"INSERT INTO users VALUES (1, 'a', 'a@example.com'), (2, 'b', NULL), (2, 'b', NULL)",
	)
	c := New(Options{Logger: testutil.NewTestLogger(t)})

	resp, err := c.Handle(ctx, Request{URL: url, Action: ActionConnect})
	require.NoError(t, err)
	assert.Equal(t, []core.TableRef{{Schema: "main", Name: "audit"}, {Schema: "main", Name: "users"}}, resp.Catalog.Tables)

	resp, err = c.Handle(ctx, Request{URL: url, Action: ActionViewTable, Table: "users"})
	require.NoError(t, err)
	assert.Equal(t, "Showing first 3 rows from main.users", resp.Message)
	assert.Equal(t, []string{"id", "name", "email"}, resp.Result.Columns)

	first := core.SnapshotRow(resp.Result, 0).Encode()
	assert.Equal(t, `{"id":"1","name":"a","email":"a@example.com"}`, first)

	resp, err = c.Handle(ctx, Request{URL: url, Action: ActionDeleteRow, Table: "main.users", Row: first})
	require.NoError(t, err)
	assert.Equal(t, "Deleted 1 row(s) from main.users", resp.Message)
	assert.Equal(t, 2, resp.Result.Len())

	// Deleting the same snapshot again is a no-op, not an error.
	resp, err = c.Handle(ctx, Request{URL: url, Action: ActionDeleteRow, Table: "main.users", Row: first})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Deleted)
	assert.Equal(t, 2, resp.Result.Len())
}

func TestSQLite_NullCellsDoNotMatch(t *testing.T) {
	ctx := context.Background()
	url := seedSQLite(t, "INSERT INTO users VALUES (2, 'b', NULL), (2, 'b', NULL)")
	c := New(Options{Logger: testutil.NewTestLogger(t)})

	resp, err := c.Handle(ctx, Request{URL: url, Action: ActionViewTable, Table: "users"})
	require.NoError(t, err)
	snap := core.SnapshotRow(resp.Result, 0)
	assert.Equal(t, core.RowSnapshot{{Column: "id", Text: "2"}, {Column: "name", Text: "b"}, {Column: "email", Text: ""}}, snap)

	// NULL is captured as "" and CAST(NULL AS TEXT) = '' is never true.
	resp, err = c.Handle(ctx, Request{URL: url, Action: ActionDeleteRow, Table: "users", Row: snap.Encode()})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Deleted)
	assert.Equal(t, 2, resp.Result.Len())
}

func TestSQLite_DuplicateRowsDeletedTogether(t *testing.T) {
	ctx := context.Background()
	url := seedSQLite(t, "INSERT INTO users VALUES (5, 'dup', 'd@x'), (5, 'dup', 'd@x'), (6, 'keep', 'k@x')")
	c := New(Options{Logger: testutil.NewTestLogger(t)})

	resp, err := c.Handle(ctx, Request{
		URL:    url,
		Action: ActionDeleteRow,
		Table:  "users",
		Row:    `{"id":5,"name":"dup","email":"d@x"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	require.Equal(t, 1, resp.Result.Len())
	assert.Equal(t, "keep", resp.Result.Rows[0][1].Text)
}

func TestSQLite_RunSQL(t *testing.T) {
	ctx := context.Background()
	url := seedSQLite(t)
	c := New(Options{Logger: testutil.NewTestLogger(t)})

	resp, err := c.Handle(ctx, Request{URL: url, Action: ActionRunSQL, SQL: "INSERT INTO users VALUES (3, 'c', NULL)"})
	require.NoError(t, err)
	assert.Equal(t, "Statement OK: INSERT 1", resp.Message)

	resp, err = c.Handle(ctx, Request{URL: url, Action: ActionRunSQL, SQL: "WITH x AS (SELECT id FROM users) SELECT id FROM x"})
	require.NoError(t, err)
	assert.Equal(t, "Query OK, 1 rows returned.", resp.Message)

	resp, err = c.Handle(ctx, Request{URL: url, Action: ActionRunSQL, SQL: "SELECT * FROM users WHERE 1 = 0"})
	require.NoError(t, err)
	assert.Equal(t, "Query OK, 0 rows returned.", resp.Message)
	assert.Empty(t, resp.Result.Columns)

	_, err = c.Handle(ctx, Request{URL: url, Action: ActionRunSQL, SQL: "SELECT * FROM missing"})
	var engineErr *core.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Contains(t, err.Error(), "no such table")
}

func TestSQLite_EmptyTableHasNoColumns(t *testing.T) {
	ctx := context.Background()
	url := seedSQLite(t)
	c := New(Options{Logger: testutil.NewTestLogger(t)})

	tests := []struct {
		name string
		req  Request
		msg  string
	}{
		{"run sql", Request{URL: url, Action: ActionRunSQL, SQL: "SELECT * FROM users"}, "Query OK, 0 rows returned."},
		{"view table", Request{URL: url, Action: ActionViewTable, Table: "main.users"}, "Showing first 0 rows from main.users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.Handle(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, resp.Message)
			require.NotNil(t, resp.Result)
			assert.Empty(t, resp.Result.Columns)
			assert.Equal(t, 0, resp.Result.Len())
		})
	}
}
