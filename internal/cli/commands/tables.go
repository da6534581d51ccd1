package commands

import (
	"github.com/leapstack-labs/sqlconsole/internal/cli/output"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the base tables of the database",
		Long: `Connect to the database and list its base tables, ordered by schema
and name. System schemas are excluded. Only tables listed here can be
browsed or have rows deleted.`,
		Example: `  sqlconsole tables --dsn postgres://app@localhost/app
  SQLCONSOLE_DSN=sqlite://./app.db sqlconsole tables -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(cmd)
		},
	}
}

func runTables(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := cmdCtx.Console.Handle(cmd.Context(), cmdCtx.Request(console.ActionConnect))
	if err != nil {
		return err
	}

	printMessage(cmd, resp.Message)
	return renderResults(cmd.OutOrStdout(), catalogResult(resp.Catalog), cmdCtx.Cfg.Output)
}

// printMessage writes a console message to stderr so stdout stays parseable.
func printMessage(cmd *cobra.Command, msg string) {
	if msg != "" {
		w := cmd.ErrOrStderr()
		output.Println(w, output.NewStyles(w).Success, msg)
	}
}

// printError writes err to stderr in the error style.
func printError(cmd *cobra.Command, err error) {
	w := cmd.ErrOrStderr()
	output.Println(w, output.NewStyles(w).Error, "Error: "+err.Error())
}
