// Package dialect provides the MySQL SQL dialect definition.
package dialect

import (
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

const catalogQuery = "SELECT table_schema, table_name\n" +
	"FROM information_schema.tables\n" +
	"WHERE table_type = 'BASE TABLE'\n" +
	"  AND table_schema NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')\n" +
	"ORDER BY table_schema, table_name;"

// MySQL is the MySQL/MariaDB dialect configuration. MySQL has no schemas
// distinct from databases, so the default schema comes from the DSN.
var MySQL = dialect.NewDialect("mysql").
	Identifiers("`", "`", "``").
	PlaceholderStyle(dialect.PlaceholderQuestion).
	TextCast("CAST(%s AS CHAR)").
	Returning(false).
	CatalogQuery(catalogQuery).
	Build()
