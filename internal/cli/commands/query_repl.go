package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "sqlconsole> "
	replContinuePrompt = "       ...> "
)

func runQueryREPL(cmd *cobra.Command, cmdCtx *CommandContext) error {
	ctx := cmd.Context()

	// History lives next to the journal when there is one
	historyFile := ""
	if cmdCtx.Cfg.JournalPath != "" {
		historyFile = filepath.Join(filepath.Dir(cmdCtx.Cfg.JournalPath), "query_history")
	}

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newTableCompleter(ctx, cmdCtx),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqlconsole REPL (%s)\n", redactedDSN(cmdCtx))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	// REPL loop
	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if multiLineBuffer.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(ctx, cmd, cmdCtx, line); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt(replContinuePrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		query := multiLineBuffer.String()
		multiLineBuffer.Reset()

		if err := executeAndRender(ctx, cmd, cmdCtx, query); err != nil {
			printError(cmd, err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// handleDotCommand runs a REPL command and reports whether the REPL should exit.
func handleDotCommand(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".tables":
		resp, err := cmdCtx.Console.Handle(ctx, cmdCtx.Request(console.ActionConnect))
		if err == nil {
			err = renderResults(cmd.OutOrStdout(), catalogResult(resp.Catalog), cmdCtx.Cfg.Output)
		}
		if err != nil {
			printError(cmd, err)
		}

	case ".browse":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .browse <schema.table>")
			return false
		}
		req := cmdCtx.Request(console.ActionViewTable)
		req.Table = parts[1]
		resp, err := cmdCtx.Console.Handle(ctx, req)
		if err == nil {
			printMessage(cmd, resp.Message)
			err = renderResults(cmd.OutOrStdout(), resp.Result, cmdCtx.Cfg.Output)
		}
		if err != nil {
			printError(cmd, err)
		}

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help                  Show this help message
  .tables                List base tables
  .browse <schema.table> Show the first rows of a table
  .quit / .exit          Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Every statement runs on a fresh connection
  - Use arrow keys to navigate history
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}

// newTableCompleter creates a readline completer for dot-commands and table names.
func newTableCompleter(ctx context.Context, cmdCtx *CommandContext) *readline.PrefixCompleter {
	var tables []readline.PrefixCompleterInterface
	// Completion is best effort; a failed catalog load leaves only dot-commands
	if resp, err := cmdCtx.Console.Handle(ctx, cmdCtx.Request(console.ActionConnect)); err == nil {
		for _, t := range resp.Catalog.Tables {
			tables = append(tables, readline.PcItem(t.String()))
		}
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".browse", tables...),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

func redactedDSN(cmdCtx *CommandContext) string {
	if strings.TrimSpace(cmdCtx.Cfg.DSN) == "" {
		return "no database URL"
	}
	return adapter.Resolve(cmdCtx.Cfg.DSN, cmdCtx.Cfg.SSLMode).Redacted()
}
