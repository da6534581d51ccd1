package adapter

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations.
type BaseSQLAdapter struct {
	Logger  *slog.Logger
	Dial    *dialect.Dialect
	Driver  string
	Adapter string
}

// Name returns the adapter name.
func (b *BaseSQLAdapter) Name() string {
	return b.Adapter
}

// Dialect returns the adapter's dialect.
func (b *BaseSQLAdapter) Dialect() *dialect.Dialect {
	return b.Dial
}

// OpenDB opens dsn with the adapter's driver, limited to a single open
// connection, and pings it. The handle is closed again if the ping fails.
func (b *BaseSQLAdapter) OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(b.Driver, dsn)
	if err != nil {
		return nil, err
	}
	return b.Verify(ctx, db)
}

// Verify applies the single connection limit to db and pings it.
func (b *BaseSQLAdapter) Verify(ctx context.Context, db *sql.DB) (*sql.DB, error) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if b.Logger != nil {
		b.Logger.Debug("database reachable", slog.String("adapter", b.Adapter))
	}
	return db, nil
}
