// Package dialect provides the DuckDB SQL dialect definition.
package dialect

import (
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

const catalogQuery = `SELECT table_schema, table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE'
  AND table_schema NOT IN ('information_schema', 'pg_catalog')
ORDER BY table_schema, table_name;`

// DuckDB is the DuckDB dialect configuration.
var DuckDB = dialect.NewDialect("duckdb").
	Identifiers(`"`, `"`, `""`).
	DefaultSchema("main").
	PlaceholderStyle(dialect.PlaceholderDollar).
	TextCast("%s::VARCHAR").
	Returning(true).
	CatalogQuery(catalogQuery).
	Build()
