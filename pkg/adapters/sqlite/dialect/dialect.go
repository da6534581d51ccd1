// Package dialect provides the SQLite SQL dialect definition.
package dialect

import (
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

// SQLite has no information_schema; user tables come from sqlite_master and
// live in the "main" schema.
const catalogQuery = `SELECT 'main' AS table_schema, name AS table_name
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
ORDER BY table_schema, table_name;`

// SQLite is the SQLite dialect configuration.
var SQLite = dialect.NewDialect("sqlite").
	Identifiers(`"`, `"`, `""`).
	DefaultSchema("main").
	PlaceholderStyle(dialect.PlaceholderQuestion).
	TextCast("CAST(%s AS TEXT)").
	Returning(true).
	CatalogQuery(catalogQuery).
	Build()
