package postgres

import (
	"context"
	"crypto/tls"
	"database/sql"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
	"github.com/leapstack-labs/sqlconsole/pkg/adapters/postgres/dialect"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:  logger,
			Dial:    dialect.Postgres,
			Driver:  "pgx",
			Adapter: "postgres",
		},
	}
}

// Open establishes a connection to PostgreSQL.
func (a *Adapter) Open(ctx context.Context, target core.ConnectionTarget) (*sql.DB, error) {
	cfg, err := connConfig(target)
	if err != nil {
		return nil, err
	}

	a.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
		slog.Bool("tls", cfg.TLSConfig != nil))

	return a.Verify(ctx, stdlib.OpenDB(*cfg))
}

// connConfig parses the query-free DSN and applies the resolved SSL decision.
// The sslmode parameter never reaches pgx: TLS is either required or off.
func connConfig(target core.ConnectionTarget) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(target.DSN)
	if err != nil {
		return nil, err
	}

	cfg.Fallbacks = nil
	if target.SSLRequired {
		// Certificates are not verified; the contract is encrypted or not.
		cfg.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // operator tool, mode only toggles encryption
			ServerName:         cfg.Host,
		}
	} else {
		cfg.TLSConfig = nil
	}
	return cfg, nil
}

// ExecStatus runs query on the pgx connection behind conn and returns the
// server's command tag, e.g. "INSERT 0 1" or "CREATE TABLE".
func (a *Adapter) ExecStatus(ctx context.Context, conn *sql.Conn, query string) (string, error) {
	var status string
	err := conn.Raw(func(driverConn any) error {
		c, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return adapter.ErrStatusUnsupported
		}
		tag, err := c.Conn().Exec(ctx, query)
		if err != nil {
			return err
		}
		status = tag.String()
		return nil
	})
	return status, err
}

// Ensure Adapter implements the adapter interfaces
var (
	_ adapter.Adapter      = (*Adapter)(nil)
	_ adapter.StatusExecer = (*Adapter)(nil)
)
