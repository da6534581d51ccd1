// Package core defines the shared language of sqlconsole.
//
// This package contains:
//   - Connection targets and table references
//   - Query results (ResultSet, Value, StatementResult)
//   - Row snapshots used to address rows for deletion
//   - The request error taxonomy
//
// pkg/core imports only stdlib and small parsing helpers.
// All other packages depend on core, not the reverse.
package core
