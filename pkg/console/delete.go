package console

import (
	"context"
	"strings"

	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

// DeleteStatement is a rendered, parameterised delete.
type DeleteStatement struct {
	SQL       string
	Args      []any
	Returning bool
}

// BuildDelete renders a delete removing every row of ref whose columns, cast
// to text, equal the snapshot values. Column names are quoted and values are
// bound, never interpolated. An empty snapshot renders WHERE TRUE and would
// match every row; DeleteMatching refuses it.
func BuildDelete(d *dialect.Dialect, ref core.TableRef, snap core.RowSnapshot) DeleteStatement {
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(d.QualifiedName(ref))
	sb.WriteString(" WHERE ")

	args := make([]any, 0, len(snap))
	if len(snap) == 0 {
		sb.WriteString("TRUE")
	}
	for i, f := range snap {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(d.CastToText(f.Column))
		sb.WriteString(" = ")
		sb.WriteString(d.FormatPlaceholder(i + 1))
		args = append(args, f.Text)
	}

	if d.Returning {
		sb.WriteString(" RETURNING *")
	}
	return DeleteStatement{SQL: sb.String(), Args: args, Returning: d.Returning}
}

// DeleteResult reports a completed delete and the refreshed browse rows.
type DeleteResult struct {
	Table   core.TableRef
	Deleted int64
	Rows    *core.ResultSet
}

// DeleteMatching deletes every row of a catalog table matching snap by text
// equality on all captured columns, then browses the table again. Deleting a
// row that is already gone reports zero and is not an error. NULL cells were
// captured as "" and only match columns whose text form is the empty string.
func DeleteMatching(ctx context.Context, s Session, catalog *Catalog, ref core.TableRef, snap core.RowSnapshot) (*DeleteResult, error) {
	if !catalog.Contains(ref) {
		return nil, &core.ValidationError{Table: ref, Delete: true}
	}
	if len(snap) == 0 {
		return nil, &core.ValidationError{Table: ref, Delete: true, Msg: "Row data must contain at least one column"}
	}

	stmt := BuildDelete(s.Dialect(), ref, snap)

	var deleted int64
	if stmt.Returning {
		rs, err := s.Query(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return nil, err
		}
		deleted = int64(rs.Len())
	} else {
		n, err := s.ExecCount(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return nil, err
		}
		deleted = n
	}

	rows, err := Browse(ctx, s, catalog, ref)
	if err != nil {
		return nil, err
	}
	return &DeleteResult{Table: ref, Deleted: deleted, Rows: rows}, nil
}
