package console

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldialect "github.com/leapstack-labs/sqlconsole/pkg/adapters/mysql/dialect"
	pgdialect "github.com/leapstack-labs/sqlconsole/pkg/adapters/postgres/dialect"
	sqlitedialect "github.com/leapstack-labs/sqlconsole/pkg/adapters/sqlite/dialect"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDelete(t *testing.T) {
	snap := core.RowSnapshot{{Column: "id", Text: "1"}, {Column: "name", Text: "a"}}

	tests := []struct {
		name     string
		stmt     DeleteStatement
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "postgres",
			stmt:     BuildDelete(pgdialect.Postgres, usersRef, snap),
			wantSQL:  `DELETE FROM "public"."users" WHERE "id"::text = $1 AND "name"::text = $2 RETURNING *`,
			wantArgs: []any{"1", "a"},
		},
		{
			name:     "mysql has no returning",
			stmt:     BuildDelete(mysqldialect.MySQL, core.TableRef{Schema: "shop", Name: "users"}, snap),
			wantSQL:  "DELETE FROM `shop`.`users` WHERE CAST(`id` AS CHAR) = ? AND CAST(`name` AS CHAR) = ?",
			wantArgs: []any{"1", "a"},
		},
		{
			name:     "sqlite",
			stmt:     BuildDelete(sqlitedialect.SQLite, core.TableRef{Schema: "main", Name: "users"}, snap),
			wantSQL:  `DELETE FROM "main"."users" WHERE CAST("id" AS TEXT) = ? AND CAST("name" AS TEXT) = ? RETURNING *`,
			wantArgs: []any{"1", "a"},
		},
		{
			name: "hostile column names are quoted",
			stmt: BuildDelete(pgdialect.Postgres, usersRef, core.RowSnapshot{
				{Column: `x" = '' OR TRUE; --`, Text: "v"},
			}),
			wantSQL:  `DELETE FROM "public"."users" WHERE "x"" = '' OR TRUE; --"::text = $1 RETURNING *`,
			wantArgs: []any{"v"},
		},
		{
			name:     "zero columns matches everything",
			stmt:     BuildDelete(pgdialect.Postgres, usersRef, core.RowSnapshot{}),
			wantSQL:  `DELETE FROM "public"."users" WHERE TRUE RETURNING *`,
			wantArgs: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSQL, tt.stmt.SQL)
			assert.Equal(t, tt.wantArgs, tt.stmt.Args)
		})
	}
}

func TestDeleteMatching(t *testing.T) {
	s, mock := newPGMock(t)
	catalog := &Catalog{Tables: []core.TableRef{usersRef}}
	snap := core.RowSnapshot{{Column: "id", Text: "1"}, {Column: "name", Text: "a"}}

	mock.ExpectQuery(`DELETE FROM "public"."users" WHERE "id"::text = $1 AND "name"::text = $2 RETURNING *`).
		WithArgs("1", "a").
		WillReturnRows(userRows(mock).AddRow(int64(1), "a"))
	mock.ExpectQuery(`SELECT * FROM "public"."users" LIMIT 200;`).
		WillReturnRows(userRows(mock).AddRow(int64(2), "b"))
	mock.ExpectClose()

	res, err := DeleteMatching(context.Background(), s, catalog, usersRef, snap)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, usersRef, res.Table)
	require.Equal(t, 1, res.Rows.Len())
	assert.Equal(t, "2", res.Rows.Rows[0][0].Text)

	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMatching_DuplicatesAllRemoved(t *testing.T) {
	s, mock := newPGMock(t)
	catalog := &Catalog{Tables: []core.TableRef{usersRef}}

	mock.ExpectQuery(`DELETE FROM "public"."users" WHERE "id"::text = $1 AND "name"::text = $2 RETURNING *`).
		WithArgs("1", "a").
		WillReturnRows(userRows(mock).AddRow(int64(1), "a").AddRow(int64(1), "a"))
	mock.ExpectQuery(`SELECT * FROM "public"."users" LIMIT 200;`).WillReturnRows(userRows(mock))
	mock.ExpectClose()

	res, err := DeleteMatching(context.Background(), s, catalog, usersRef,
		core.RowSnapshot{{Column: "id", Text: "1"}, {Column: "name", Text: "a"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Deleted)
	assert.Equal(t, 0, res.Rows.Len())
	require.NoError(t, s.Close())
}

func TestDeleteMatching_NullCapturedAsEmptyText(t *testing.T) {
	s, mock := newPGMock(t)
	catalog := &Catalog{Tables: []core.TableRef{usersRef}}

	// A NULL cell is captured as "" and compared as text, so it only
	// matches rows whose value renders as the empty string.
	mock.ExpectQuery(`DELETE FROM "public"."users" WHERE "id"::text = $1 AND "email"::text = $2 RETURNING *`).
		WithArgs("3", "").
		WillReturnRows(userRows(mock))
	mock.ExpectQuery(`SELECT * FROM "public"."users" LIMIT 200;`).
		WillReturnRows(userRows(mock).AddRow(int64(3), nil))
	mock.ExpectClose()

	res, err := DeleteMatching(context.Background(), s, catalog, usersRef,
		core.RowSnapshot{{Column: "id", Text: "3"}, {Column: "email", Text: ""}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Deleted)
	assert.Equal(t, 1, res.Rows.Len())
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMatching_WithoutReturning(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	s := newSessionFor(t, db, mysqldialect.MySQL)
	shop := core.TableRef{Schema: "shop", Name: "users"}
	catalog := &Catalog{Tables: []core.TableRef{shop}}

	mock.ExpectExec("DELETE FROM `shop`.`users` WHERE CAST(`id` AS CHAR) = ?").
		WithArgs("7").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT * FROM `shop`.`users` LIMIT 200;").WillReturnRows(userRows(mock))
	mock.ExpectClose()

	res, err := DeleteMatching(context.Background(), s, catalog, shop, core.RowSnapshot{{Column: "id", Text: "7"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMatching_Rejections(t *testing.T) {
	catalog := &Catalog{Tables: []core.TableRef{usersRef}}

	tests := []struct {
		name    string
		ref     core.TableRef
		snap    core.RowSnapshot
		wantMsg string
	}{
		{
			name:    "table not in catalog",
			ref:     core.TableRef{Schema: "public", Name: "secrets"},
			snap:    core.RowSnapshot{{Column: "id", Text: "1"}},
			wantMsg: "Table public.secrets not found or not allowed for delete",
		},
		{
			name:    "empty snapshot",
			ref:     usersRef,
			snap:    core.RowSnapshot{},
			wantMsg: "Row data must contain at least one column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newPGMock(t)
			mock.ExpectClose()

			_, err := DeleteMatching(context.Background(), s, catalog, tt.ref, tt.snap)
			var valErr *core.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantMsg, err.Error())

			require.NoError(t, s.Close())
			assert.NoError(t, mock.ExpectationsWereMet(), "no SQL may be issued")
		})
	}
}

func TestDeleteMatching_EngineErrorSkipsReload(t *testing.T) {
	s, mock := newPGMock(t)
	catalog := &Catalog{Tables: []core.TableRef{usersRef}}

	mock.ExpectQuery(`DELETE FROM "public"."users" WHERE "id"::text = $1 RETURNING *`).
		WithArgs("1").
		WillReturnError(errors.New(`update or delete on table "users" violates foreign key constraint`))
	mock.ExpectClose()

	_, err := DeleteMatching(context.Background(), s, catalog, usersRef, core.RowSnapshot{{Column: "id", Text: "1"}})
	var engineErr *core.EngineError
	require.ErrorAs(t, err, &engineErr)
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
