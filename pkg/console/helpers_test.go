package console

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/sqlconsole/internal/testutil"
	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
	pgdialect "github.com/leapstack-labs/sqlconsole/pkg/adapters/postgres/dialect"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
	"github.com/stretchr/testify/require"
)

var (
	usersRef  = core.TableRef{Schema: "public", Name: "users"}
	ordersRef = core.TableRef{Schema: "sales", Name: "orders"}
)

// newPGMock returns a Postgres-dialect session over sqlmock using exact SQL matching.
func newPGMock(t *testing.T) (*adapter.Session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	s, err := adapter.NewSession(context.Background(), db, pgdialect.Postgres,
		adapter.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	return s, mock
}

// mockOpener hands out a fresh sqlmock-backed Postgres session.
func mockOpener(t *testing.T) (Opener, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	open := func(ctx context.Context, _ core.ConnectionTarget, logger *slog.Logger) (Session, error) {
		return adapter.NewSession(ctx, db, pgdialect.Postgres, adapter.WithLogger(logger))
	}
	return open, mock
}

func catalogRows(mock sqlmock.Sqlmock, refs ...core.TableRef) *sqlmock.Rows {
	rows := mock.NewRowsWithColumnDefinition(
		mock.NewColumn("table_schema").OfType("TEXT", ""),
		mock.NewColumn("table_name").OfType("TEXT", ""),
	)
	for _, r := range refs {
		rows.AddRow(r.Schema, r.Name)
	}
	return rows
}

func expectCatalog(mock sqlmock.Sqlmock, refs ...core.TableRef) {
	mock.ExpectQuery(pgdialect.Postgres.CatalogQuery).WillReturnRows(catalogRows(mock, refs...))
}

func userRows(mock sqlmock.Sqlmock) *sqlmock.Rows {
	return mock.NewRowsWithColumnDefinition(
		mock.NewColumn("id").OfType("INT4", int64(0)),
		mock.NewColumn("name").OfType("TEXT", ""),
	)
}

func newSessionFor(t *testing.T, db *sql.DB, d *dialect.Dialect) *adapter.Session {
	t.Helper()
	s, err := adapter.NewSession(context.Background(), db, d, adapter.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	return s
}
