// Package adapter provides the engine adapter contract, the DSN resolver and
// the single-connection Session every console request runs on.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves for one or more URL schemes.
package adapter

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

// ErrStatusUnsupported is returned by StatusExecer implementations when the
// underlying driver connection cannot report a native command tag.
var ErrStatusUnsupported = errors.New("native statement status not supported by this connection")

// Adapter defines the interface that all engine adapters must implement.
type Adapter interface {
	// Name returns the adapter name (e.g., "postgres").
	Name() string

	// Open opens a database handle for the target and verifies it is reachable.
	// Errors are returned as produced by the driver so their text reaches the
	// operator unmodified.
	Open(ctx context.Context, target core.ConnectionTarget) (*sql.DB, error)

	// Dialect returns the SQL dialect configuration for this adapter.
	Dialect() *dialect.Dialect
}

// StatusExecer is implemented by adapters whose driver reports the engine's
// own command tag (e.g. "UPDATE 3", "CREATE TABLE").
type StatusExecer interface {
	ExecStatus(ctx context.Context, conn *sql.Conn, query string) (string, error)
}

// SchemaResolver is implemented by adapters whose default schema depends on
// the target, such as MySQL where it is the database named in the DSN.
type SchemaResolver interface {
	DefaultSchema(target core.ConnectionTarget) string
}
