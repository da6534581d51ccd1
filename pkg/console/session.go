// Package console implements the operations an operator performs against an
// arbitrary database: listing the table catalog, browsing a table, running
// ad hoc SQL and deleting rows matched by a captured snapshot.
package console

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

// Session is the connection surface the console operations need.
// *adapter.Session implements it.
type Session interface {
	Query(ctx context.Context, query string, args ...any) (*core.ResultSet, error)
	Exec(ctx context.Context, query string) (string, error)
	ExecCount(ctx context.Context, query string, args ...any) (int64, error)
	Dialect() *dialect.Dialect
	DefaultSchema() string
	Close() error
}

// Opener opens a Session for a resolved target.
type Opener func(ctx context.Context, target core.ConnectionTarget, logger *slog.Logger) (Session, error)

// OpenSession is the default Opener, backed by the adapter registry.
func OpenSession(ctx context.Context, target core.ConnectionTarget, logger *slog.Logger) (Session, error) {
	s, err := adapter.Open(ctx, target, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

var _ Session = (*adapter.Session)(nil)
