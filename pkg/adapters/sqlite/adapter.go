package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
	"github.com/leapstack-labs/sqlconsole/pkg/adapters/sqlite/dialect"
	"github.com/leapstack-labs/sqlconsole/pkg/core"

	_ "modernc.org/sqlite" // sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:  logger,
			Dial:    dialect.SQLite,
			Driver:  "sqlite",
			Adapter: "sqlite",
		},
	}
}

// Open opens the database file named by the target.
// Use sqlite://:memory: for an in-memory database.
func (a *Adapter) Open(ctx context.Context, target core.ConnectionTarget) (*sql.DB, error) {
	path, err := databasePath(target)
	if err != nil {
		return nil, err
	}

	a.Logger.Debug("opening sqlite database", slog.String("path", path))
	return a.OpenDB(ctx, path)
}

// databasePath strips the URL scheme. file: URIs are passed through so the
// driver can interpret their parameters.
func databasePath(target core.ConnectionTarget) (string, error) {
	dsn := target.DSN
	if target.Scheme == "file" {
		return dsn, nil
	}

	_, path, ok := strings.Cut(dsn, "://")
	if !ok {
		path = dsn
	}
	if path == "" {
		return "", fmt.Errorf("sqlite DSN must name a database file, e.g. sqlite:///var/data/app.db")
	}
	return path, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
