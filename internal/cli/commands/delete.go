package commands

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/spf13/cobra"
)

// DeleteOptions holds options for the delete command.
type DeleteOptions struct {
	Row string
	Yes bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	opts := &DeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <schema.table>",
		Short: "Delete every row matching a row snapshot",
		Long: `Delete all rows of a base table whose columns, compared as text, equal
the values of a row snapshot. Snapshots are printed by
'sqlconsole browse --snapshots'. Identical rows are all deleted.

After the delete the table is browsed again and shown.`,
		Example: `  sqlconsole delete public.users --row '{"id":"7","name":"bob"}' --yes`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Row, "row", "", "Row snapshot as a JSON object (required)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Confirm the delete")
	_ = cmd.MarkFlagRequired("row")

	return cmd
}

func runDelete(cmd *cobra.Command, table string, opts *DeleteOptions) error {
	if strings.TrimSpace(opts.Row) == "" {
		return errors.New("--row must not be empty")
	}
	if !opts.Yes {
		return errors.New("refusing to delete without --yes")
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	req := cmdCtx.Request(console.ActionDeleteRow)
	req.Table = table
	req.Row = opts.Row
	resp, err := cmdCtx.Console.Handle(cmd.Context(), req)
	if err != nil {
		return err
	}

	printMessage(cmd, resp.Message)
	return renderResults(cmd.OutOrStdout(), resp.Result, cmdCtx.Cfg.Output)
}
