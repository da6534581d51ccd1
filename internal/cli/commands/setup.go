package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlconsole/internal/cli/config"
	"github.com/leapstack-labs/sqlconsole/internal/journal"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/spf13/cobra"

	// Register the engine adapters selectable by URL scheme.
	_ "github.com/leapstack-labs/sqlconsole/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/sqlconsole/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/sqlconsole/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqlconsole/pkg/adapters/sqlite"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Logger  *slog.Logger
	Console *console.Console
	Journal *journal.Store
}

// NewCommandContext creates a CommandContext with a console and, when a
// journal path is configured, an open journal recording every request.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	store, err := openJournal(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	opts := console.Options{
		Logger:  logger,
		Timeout: cfg.QueryTimeout,
	}
	if store != nil {
		opts.Recorder = store
	}

	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
	}

	return &CommandContext{
		Cfg:     cfg,
		Logger:  logger,
		Console: console.New(opts),
		Journal: store,
	}, cleanup, nil
}

// Request returns a console request for the configured database.
func (c *CommandContext) Request(action console.Action) console.Request {
	return console.Request{
		URL:     c.Cfg.DSN,
		SSLMode: c.Cfg.SSLMode,
		Action:  action,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise loads defaults and environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	if cfg, err := config.LoadConfig("", nil); err == nil {
		return cfg
	}
	return &config.Config{
		Output:       config.DefaultOutput,
		LogFormat:    config.DefaultLogFormat,
		QueryTimeout: config.DefaultQueryTimeout,
	}
}

func openJournal(cfg *config.Config, logger *slog.Logger) (*journal.Store, error) {
	if cfg.JournalPath == "" {
		return nil, nil
	}
	store := journal.NewStore(logger)
	if err := store.Open(cfg.JournalPath); err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return store, nil
}
