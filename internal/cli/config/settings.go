package config

import (
	"slices"
	"strings"
)

// Setting describes one configuration key. A nil Default means the key is
// unset unless a file, variable or flag provides it.
type Setting struct {
	Key         string
	Default     any
	Description string
}

// settings is the single list of keys LoadConfig seeds and the docs render.
var settings = []Setting{
	{Key: "dsn", Description: "Database URL"},
	{Key: "sslmode", Description: "SSL mode, overrides ?sslmode= in the URL"},
	{Key: "output", Default: DefaultOutput, Description: "Output format: " + strings.Join(OutputFormats, ", ")},
	{Key: "verbose", Default: false, Description: "Debug logging"},
	{Key: "log_format", Default: DefaultLogFormat, Description: "Log format: text or json"},
	{Key: "journal_path", Default: DefaultJournalPath, Description: "Activity journal path, empty disables it"},
	{Key: "query_timeout", Default: DefaultQueryTimeout.String(), Description: "Per-request timeout"},
	{Key: "server.host", Default: DefaultHost, Description: "Web console listen host"},
	{Key: "server.port", Default: DefaultPort, Description: "Web console port"},
	{Key: "server.auto_open", Default: false, Description: "Open the web console in a browser"},
	{Key: "server.watch", Default: false, Description: "Reload the form defaults when the config file changes"},
	{Key: "server.session_secret", Description: "Web console cookie secret, random per process when empty"},
	{Key: "server.default_sslmode", Default: DefaultServerSSLMode, Description: "SSL mode the web form starts with"},
	{Key: "server.read_header_timeout", Default: DefaultReadHeaderTimeout.String(), Description: "HTTP read header timeout"},
	{Key: "server.shutdown_timeout", Default: DefaultShutdownTimeout.String(), Description: "Graceful shutdown timeout"},
}

// Settings returns every configuration key in documentation order.
func Settings() []Setting {
	return slices.Clone(settings)
}

// EnvVar returns the environment variable that sets key.
// server.port becomes SQLCONSOLE_SERVER_PORT.
func EnvVar(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func defaults() map[string]any {
	m := make(map[string]any, len(settings))
	for _, s := range settings {
		if s.Default != nil {
			m[s.Key] = s.Default
		}
	}
	return m
}
