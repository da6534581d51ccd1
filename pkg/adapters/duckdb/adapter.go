package duckdb

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"strings"

	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
	"github.com/leapstack-labs/sqlconsole/pkg/adapters/duckdb/dialect"
	"github.com/leapstack-labs/sqlconsole/pkg/core"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:  logger,
			Dial:    dialect.DuckDB,
			Driver:  "duckdb",
			Adapter: "duckdb",
		},
	}
}

// Open opens the DuckDB database named by the target.
// duckdb:// or duckdb://:memory: opens an in-memory database.
func (a *Adapter) Open(ctx context.Context, target core.ConnectionTarget) (*sql.DB, error) {
	dsn, err := buildDSN(target)
	if err != nil {
		return nil, err
	}

	a.Logger.Debug("opening duckdb database", slog.String("dsn", dsn))
	return a.OpenDB(ctx, dsn)
}

// buildDSN maps the target to the go-duckdb "path?option=value" form.
func buildDSN(target core.ConnectionTarget) (string, error) {
	_, path, _ := strings.Cut(target.DSN, "://")
	if path == ":memory:" {
		path = ""
	}

	var query url.Values
	if _, raw, ok := strings.Cut(target.RawURL, "?"); ok {
		query, _ = url.ParseQuery(raw)
	}
	params, err := ParseParams(query)
	if err != nil {
		return "", err
	}

	if encoded := params.Encode(); encoded != "" {
		return path + "?" + encoded, nil
	}
	return path, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
