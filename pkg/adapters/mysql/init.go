// Package mysql provides a MySQL database adapter for sqlconsole.
//
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/sqlconsole/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
)

func init() {
	adapter.Register(func(l *slog.Logger) adapter.Adapter { return New(l) }, "mysql", "mariadb")
}
