package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

// BrowseLimit caps the rows returned by Browse.
const BrowseLimit = 200

// Route is the execution path chosen for a SQL text.
type Route int

const (
	// RouteNone means the text is blank and nothing is executed.
	RouteNone Route = iota
	// RouteRows means the statement returns rows.
	RouteRows
	// RouteStatus means the statement returns an engine status string.
	RouteStatus
)

// String returns the string representation of Route.
func (r Route) String() string {
	switch r {
	case RouteNone:
		return "none"
	case RouteRows:
		return "rows"
	case RouteStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Classify picks the route for sql. Text whose first word is SELECT, or which
// starts with WITH, returns rows. Everything else, including VALUES, SHOW and
// INSERT ... RETURNING, takes the status path.
func Classify(sql string) Route {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return RouteNone
	}
	lower := strings.ToLower(trimmed)
	if strings.Fields(lower)[0] == "select" || strings.HasPrefix(lower, "with") {
		return RouteRows
	}
	return RouteStatus
}

// Outcome is the result of Execute.
type Outcome struct {
	Route  Route
	Rows   *core.ResultSet
	Status string
}

// Execute runs caller supplied SQL unmodified on the route Classify picks.
// Engine failures are returned as *core.EngineError.
func Execute(ctx context.Context, s Session, sql string) (*Outcome, error) {
	route := Classify(sql)
	switch route {
	case RouteRows:
		rs, err := s.Query(ctx, sql)
		if err != nil {
			return nil, err
		}
		return &Outcome{Route: route, Rows: rs}, nil
	case RouteStatus:
		status, err := s.Exec(ctx, sql)
		if err != nil {
			return nil, err
		}
		return &Outcome{Route: route, Status: status}, nil
	default:
		return &Outcome{Route: RouteNone}, nil
	}
}

// BrowseSQL renders the fixed browse statement for ref.
func BrowseSQL(d *dialect.Dialect, ref core.TableRef) string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d;", d.QualifiedName(ref), BrowseLimit)
}

// Browse returns up to BrowseLimit rows of a catalog table.
func Browse(ctx context.Context, s Session, catalog *Catalog, ref core.TableRef) (*core.ResultSet, error) {
	if !catalog.Contains(ref) {
		return nil, &core.ValidationError{Table: ref}
	}
	out, err := Execute(ctx, s, BrowseSQL(s.Dialect(), ref))
	if err != nil {
		return nil, err
	}
	return out.Rows, nil
}
