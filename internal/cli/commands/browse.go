package commands

import (
	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/spf13/cobra"
)

// SnapshotColumn is the extra column holding each row's delete token.
const SnapshotColumn = "_row"

// BrowseOptions holds options for the browse command.
type BrowseOptions struct {
	Snapshots bool
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	opts := &BrowseOptions{}

	cmd := &cobra.Command{
		Use:   "browse <schema.table>",
		Short: "Show the first rows of a table",
		Long: `Show up to 200 rows of a base table. The table must be listed by
'sqlconsole tables'. Without a schema prefix the engine default schema
is used.

With --snapshots every row carries a token that 'sqlconsole delete --row'
accepts to delete that exact row.`,
		Example: `  sqlconsole browse public.users
  sqlconsole browse users --snapshots -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Snapshots, "snapshots", false, "Add a column with each row's delete token")

	return cmd
}

func runBrowse(cmd *cobra.Command, table string, opts *BrowseOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	req := cmdCtx.Request(console.ActionViewTable)
	req.Table = table
	resp, err := cmdCtx.Console.Handle(cmd.Context(), req)
	if err != nil {
		return err
	}

	printMessage(cmd, resp.Message)
	rs := resp.Result
	if opts.Snapshots {
		rs = withSnapshots(rs)
	}
	return renderResults(cmd.OutOrStdout(), rs, cmdCtx.Cfg.Output)
}

// withSnapshots returns a copy of rs with an extra column holding the
// encoded RowSnapshot of each row.
func withSnapshots(rs *core.ResultSet) *core.ResultSet {
	if rs == nil {
		return nil
	}
	out := &core.ResultSet{
		Columns: append(append([]string{}, rs.Columns...), SnapshotColumn),
		Rows:    make([][]core.Value, len(rs.Rows)),
	}
	for i, row := range rs.Rows {
		token := core.SnapshotRow(rs, i).Encode()
		out.Rows[i] = append(append([]core.Value{}, row...), core.Value{Kind: core.KindText, Raw: token, Text: token})
	}
	return out
}
