package dbconsole

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
)

// SetupRoutes configures routes for the console page.
func SetupRoutes(router chi.Router, c *console.Console, sessionStore sessions.Store, opts Options) error {
	handlers := NewHandlers(c, sessionStore, opts)

	router.Get("/", handlers.ConsolePage)
	router.Post("/", handlers.Submit)

	return nil
}
