package core

import "fmt"

func fmtAny(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// ResultSet is a fully materialised tabular result.
type ResultSet struct {
	Columns []string
	Rows    [][]Value
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// StatementResult carries the engine status of a statement that returns no rows,
// e.g. "UPDATE 3" or "CREATE TABLE".
type StatementResult struct {
	Status string
}
