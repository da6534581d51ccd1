package core

import "strings"

// TableRef names a table by schema and table name. Both parts are compared
// case-sensitively and are never embedded into SQL unquoted.
type TableRef struct {
	Schema string
	Name   string
}

// String returns the display form "schema.name".
func (r TableRef) String() string {
	return r.Schema + "." + r.Name
}

// IsZero reports whether the reference is empty.
func (r TableRef) IsZero() bool {
	return r.Schema == "" && r.Name == ""
}

// ParseTableRef splits "schema.name" at the first dot. A name without a dot
// is placed in defaultSchema.
func ParseTableRef(s, defaultSchema string) TableRef {
	s = strings.TrimSpace(s)
	if schema, name, ok := strings.Cut(s, "."); ok {
		return TableRef{Schema: schema, Name: name}
	}
	return TableRef{Schema: defaultSchema, Name: s}
}
