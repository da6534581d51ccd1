// Package router sets up HTTP routes for the web console.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/sqlconsole/internal/ui/features/dbconsole"
	"github.com/leapstack-labs/sqlconsole/internal/ui/resources"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
)

// SetupRoutes configures all routes for the web console.
func SetupRoutes(
	router chi.Router,
	c *console.Console,
	sessionStore sessions.Store,
	opts dbconsole.Options,
) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// Feature routes
	if err := dbconsole.SetupRoutes(router, c, sessionStore, opts); err != nil {
		return err
	}

	return nil
}
