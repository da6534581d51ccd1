//go:build governance

package core_test

import (
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/sqlconsole"

// driverModules are database drivers that only engine adapters may link.
var driverModules = []string{
	"github.com/jackc/pgx",
	"github.com/go-sql-driver/mysql",
	"modernc.org/sqlite",
	"github.com/marcboeker/go-duckdb",
}

func isDriver(path string) bool {
	for _, d := range driverModules {
		if strings.HasPrefix(path, d) {
			return true
		}
	}
	return false
}

// =============================================================================
// LAYERING TEST - Dialect definitions carry no driver dependencies
// =============================================================================

// TestGovernance_DialectsAreDriverFree verifies that pkg/adapters/*/dialect
// packages, directly or transitively, link no database driver. Quoting and
// catalog SQL must be usable without pulling in cgo or network code.
func TestGovernance_DialectsAreDriverFree(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/adapters/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	found := 0
	for _, p := range pkgs {
		if !strings.HasSuffix(p.PkgPath, "/dialect") {
			continue
		}
		found++

		seen := make(map[string]bool)
		var walk func(*packages.Package)
		walk = func(pkg *packages.Package) {
			for path, dep := range pkg.Imports {
				if seen[path] {
					continue
				}
				seen[path] = true
				if isDriver(path) {
					t.Errorf("LAYERING VIOLATION: '%s' links driver package '%s'",
						strings.TrimPrefix(p.PkgPath, modulePath+"/"), path)
					continue
				}
				walk(dep)
			}
		}
		walk(p)
	}

	if found == 0 {
		t.Fatal("no dialect packages found under pkg/adapters")
	}
}

// =============================================================================
// PURITY TEST - Public packages do not depend on internal ones
// =============================================================================

// TestGovernance_PkgDoesNotImportInternal ensures nothing under pkg/ imports
// internal/. The console core must stay embeddable without the CLI or web UI.
func TestGovernance_PkgDoesNotImportInternal(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	for _, p := range pkgs {
		for path := range p.Imports {
			if strings.HasPrefix(path, modulePath+"/internal/") {
				t.Errorf("PURITY VIOLATION: '%s' imports '%s'",
					strings.TrimPrefix(p.PkgPath, modulePath+"/"), path)
			}
		}
	}
}
