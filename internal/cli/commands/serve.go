package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/leapstack-labs/sqlconsole/internal/cli/config"
	"github.com/leapstack-labs/sqlconsole/internal/ui"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web console",
		Long: `Start a local web server with the single-page database console.

The page provides:
- A connection form (database URL and SSL mode)
- The list of base tables with browse links
- A SQL console
- Row deletion from browsed tables

Every form submission opens its own connection and closes it before the
page is returned.`,
		Example: `  # Start on the default address
  sqlconsole serve

  # Listen on all interfaces, custom port
  sqlconsole serve --host 0.0.0.0 --port 3000

  # Open the browser once the server is up
  sqlconsole serve --open

  # Pick up dsn and server.default_sslmode edits without a restart
  sqlconsole serve --config sqlconsole.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().String("host", "", "Interface to listen on (default: 127.0.0.1)")
	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("open", false, "Open the console in a browser")
	cmd.Flags().Bool("watch", false, "Reload connection defaults when the config file changes")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	srvCfg := cmdCtx.Cfg.Server

	var watchFile string
	if srvCfg.Watch {
		watchFile = config.GetConfigFileUsed()
		if watchFile == "" {
			cmdCtx.Logger.Warn("--watch ignored: no config file in use")
		}
	}
	server := ui.NewServer(ui.Config{
		Console:           cmdCtx.Console,
		Host:              srvCfg.Host,
		Port:              srvCfg.Port,
		SessionSecret:     srvCfg.SessionSecret,
		DefaultSSLMode:    srvCfg.DefaultSSLMode,
		DefaultDSN:        cmdCtx.Cfg.DSN,
		ReadHeaderTimeout: srvCfg.ReadHeaderTimeout,
		ShutdownTimeout:   srvCfg.ShutdownTimeout,
		Logger:            cmdCtx.Logger,
		WatchFile:         watchFile,
		Reload:            reloadDefaults(watchFile, cmd),
	})

	url := fmt.Sprintf("http://%s", srvCfg.Addr())
	if srvCfg.AutoOpen {
		go openBrowser(url)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting console on %s\n", url)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// reloadDefaults re-reads the configuration with the same flags and returns
// the web console's connection defaults.
func reloadDefaults(file string, cmd *cobra.Command) ui.ReloadFunc {
	if file == "" {
		return nil
	}
	return func() (string, string, error) {
		cfg, err := config.LoadConfig(file, cmd.Flags())
		if err != nil {
			return "", "", err
		}
		return cfg.DSN, cfg.Server.DefaultSSLMode, nil
	}
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(context.Background(), "open", url)
	case "linux":
		cmd = exec.CommandContext(context.Background(), "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(context.Background(), "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
