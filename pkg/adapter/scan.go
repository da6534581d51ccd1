package adapter

import (
	"database/sql"

	"github.com/leapstack-labs/sqlconsole/pkg/core"
)

// scanRows reads every row of rows into a ResultSet. A result without rows
// also drops its column names: Columns and Rows are both non-nil and empty.
func scanRows(rows *sql.Rows) (*core.ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	dbTypes := make([]string, len(cols))
	for i := range types {
		if i < len(dbTypes) {
			dbTypes[i] = types[i].DatabaseTypeName()
		}
	}

	rs := &core.ResultSet{
		Columns: append([]string{}, cols...),
		Rows:    [][]core.Value{},
	}

	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make([]core.Value, len(cols))
		for i, v := range raw {
			row[i] = core.NewValue(v, dbTypes[i])
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(rs.Rows) == 0 {
		rs.Columns = []string{}
	}
	return rs, nil
}
