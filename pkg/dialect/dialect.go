// Package dialect provides SQL dialect configuration for the engines the
// console can talk to.
//
// A dialect knows how to quote identifiers, format bind placeholders, cast a
// column to text and which statement lists the user tables. Concrete dialects
// are defined in the pkg/adapters/*/dialect packages.
package dialect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlconsole/pkg/core"
)

// ErrDialectRequired is returned when a session is opened without a dialect.
var ErrDialectRequired = errors.New("dialect is required")

// Re-exported so dialect definitions only need to import this package.
const (
	PlaceholderQuestion = core.PlaceholderQuestion
	PlaceholderDollar   = core.PlaceholderDollar
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("main" for DuckDB, "public" for Postgres)
	Placeholder   core.PlaceholderStyle // How to format query parameters
	TextCast      string                // fmt pattern casting a quoted column to text
	Returning     bool                  // DELETE ... RETURNING * supported

	// CatalogQuery lists (schema, name) of user base tables ordered by both.
	CatalogQuery string
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
// Every embedded closing quote is doubled, so any string is safe to embed.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// UnquoteIdentifier reverses QuoteIdentifier. Fragments that are not wrapped
// in the dialect's quotes are returned unchanged.
func (d *Dialect) UnquoteIdentifier(quoted string) string {
	q, qe := d.Identifiers.Quote, d.Identifiers.QuoteEnd
	if len(quoted) < len(q)+len(qe) || !strings.HasPrefix(quoted, q) || !strings.HasSuffix(quoted, qe) {
		return quoted
	}
	inner := quoted[len(q) : len(quoted)-len(qe)]
	return strings.ReplaceAll(inner, d.Identifiers.Escape, qe)
}

// QualifiedName renders a quoted schema.table reference.
func (d *Dialect) QualifiedName(ref core.TableRef) string {
	return d.QuoteIdentifier(ref.Schema) + "." + d.QuoteIdentifier(ref.Name)
}

// CastToText renders a quoted column cast to the dialect's text type.
func (d *Dialect) CastToText(column string) string {
	pattern := d.TextCast
	if pattern == "" {
		pattern = "CAST(%s AS TEXT)"
	}
	return fmt.Sprintf(pattern, d.QuoteIdentifier(column))
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:    `"`,
				QuoteEnd: `"`,
				Escape:   `""`,
			},
			TextCast: "CAST(%s AS TEXT)",
		},
	}
}

// Identifiers configures identifier quoting. escape replaces every quoteEnd
// found inside an identifier.
func (b *Builder) Identifiers(quote, quoteEnd, escape string) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:    quote,
		QuoteEnd: quoteEnd,
		Escape:   escape,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets the placeholder style.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// TextCast sets the text cast pattern, e.g. "%s::text".
func (b *Builder) TextCast(pattern string) *Builder {
	b.dialect.TextCast = pattern
	return b
}

// Returning marks DELETE ... RETURNING as supported.
func (b *Builder) Returning(ok bool) *Builder {
	b.dialect.Returning = ok
	return b
}

// CatalogQuery sets the statement used to list user tables.
func (b *Builder) CatalogQuery(query string) *Builder {
	b.dialect.CatalogQuery = query
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
