// Package dialect provides the PostgreSQL SQL dialect definition.
// This package has no database driver dependencies.
package dialect

import (
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

// catalogQuery lists user base tables, skipping the system schemas.
const catalogQuery = `SELECT table_schema, table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE'
  AND table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY table_schema, table_name;`

// Postgres is the PostgreSQL dialect configuration.
var Postgres = dialect.NewDialect("postgres").
	Identifiers(`"`, `"`, `""`).
	DefaultSchema("public").
	PlaceholderStyle(dialect.PlaceholderDollar).
	TextCast("%s::text").
	Returning(true).
	CatalogQuery(catalogQuery).
	Build()
