// Package postgres provides a PostgreSQL database adapter for sqlconsole.
//
// This file registers the PostgreSQL adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/sqlconsole/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
)

func init() {
	adapter.Register(func(l *slog.Logger) adapter.Adapter { return New(l) }, "postgres", "postgresql")
}
