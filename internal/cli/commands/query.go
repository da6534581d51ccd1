package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run SQL against the database",
		Long: `Run a SQL statement against the database.

Statements starting with SELECT or WITH print their rows. Anything else
prints the engine status, for example "UPDATE 3" or "CREATE TABLE".
The statement is sent as-is.

SQL is read from the arguments, from --input, or from piped stdin.
When invoked without SQL on a terminal, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  sqlconsole query "SELECT * FROM users"

  # Read SQL from a file
  sqlconsole query --input report.sql -o csv

  # Pipe SQL in
  echo "UPDATE users SET active = true" | sqlconsole query

  # Interactive mode
  sqlconsole query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Determine SQL source
	var sqlQuery string

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(cmd.InOrStdin()):
		// Read from stdin (piped input)
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, cmdCtx)
	}

	if console.Classify(sqlQuery) == console.RouteNone {
		return errors.New("no SQL to execute")
	}
	return executeAndRender(cmd.Context(), cmd, cmdCtx, sqlQuery)
}

// executeAndRender runs one statement as its own console request.
func executeAndRender(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, sqlQuery string) error {
	req := cmdCtx.Request(console.ActionRunSQL)
	req.SQL = sqlQuery
	resp, err := cmdCtx.Console.Handle(ctx, req)
	if err != nil {
		return err
	}

	printMessage(cmd, resp.Message)
	if resp.Result == nil {
		return nil
	}
	return renderResults(cmd.OutOrStdout(), resp.Result, cmdCtx.Cfg.Output)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
