// Package sqlite provides a SQLite database adapter for sqlconsole, backed by
// the pure Go modernc.org/sqlite driver.
//
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/sqlconsole/pkg/adapters/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
)

func init() {
	adapter.Register(func(l *slog.Logger) adapter.Adapter { return New(l) }, "sqlite", "sqlite3", "file")
}
