package commands

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

// JournalOptions holds options for the journal command.
type JournalOptions struct {
	Limit int
}

// NewJournalCommand creates the journal command.
func NewJournalCommand() *cobra.Command {
	opts := &JournalOptions{}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent console activity",
		Long: `Show the most recent requests recorded in the activity journal, newest
first. Passwords in database URLs are masked before they are recorded.`,
		Example: `  sqlconsole journal
  sqlconsole journal --limit 50 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJournal(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Number of entries to show")

	return cmd
}

func runJournal(cmd *cobra.Command, opts *JournalOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if cmdCtx.Journal == nil {
		return errors.New("journal is disabled (set journal_path or --journal)")
	}

	entries, err := cmdCtx.Journal.Recent(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Action,
			e.Table,
			e.Message,
			e.Error,
			strconv.FormatInt(e.Deleted, 10),
			e.Duration.String(),
			e.DSN,
		})
	}
	rs := textResult([]string{"time", "action", "table", "message", "error", "deleted", "duration", "dsn"}, rows)
	return renderResults(cmd.OutOrStdout(), rs, cmdCtx.Cfg.Output)
}
