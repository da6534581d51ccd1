package console

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/sqlconsole/pkg/core"
)

// Catalog is the ordered list of user base tables visible on a connection.
// It is the only authority on which tables may be browsed or deleted from.
type Catalog struct {
	Tables []core.TableRef
}

// Contains reports whether ref names a catalog table. Both parts must match
// exactly, including case.
func (c *Catalog) Contains(ref core.TableRef) bool {
	if c == nil {
		return false
	}
	for _, t := range c.Tables {
		if t == ref {
			return true
		}
	}
	return false
}

// Len returns the number of tables.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Tables)
}

// ListBaseTables runs the dialect's catalog query. Rows keep the engine's
// (schema, name) ordering.
func ListBaseTables(ctx context.Context, s Session) (*Catalog, error) {
	query := s.Dialect().CatalogQuery
	if query == "" {
		return nil, fmt.Errorf("dialect %s has no catalog query", s.Dialect().Name)
	}

	rs, err := s.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{Tables: make([]core.TableRef, 0, len(rs.Rows))}
	for _, row := range rs.Rows {
		if len(row) < 2 {
			continue
		}
		catalog.Tables = append(catalog.Tables, core.TableRef{Schema: row[0].Text, Name: row[1].Text})
	}
	return catalog, nil
}
