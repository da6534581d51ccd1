// Package config provides configuration management for the sqlconsole CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	DSN          string        `koanf:"dsn"`
	SSLMode      string        `koanf:"sslmode"`
	Output       string        `koanf:"output"`
	Verbose      bool          `koanf:"verbose"`
	LogFormat    string        `koanf:"log_format"`
	JournalPath  string        `koanf:"journal_path"`
	QueryTimeout time.Duration `koanf:"query_timeout"`
	Server       ServerConfig  `koanf:"server"`
}

// ServerConfig holds configuration for the web console.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	AutoOpen          bool          `koanf:"auto_open"`
	Watch             bool          `koanf:"watch"`
	SessionSecret     string        `koanf:"session_secret"`
	DefaultSSLMode    string        `koanf:"default_sslmode"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + itoa(s.Port)
}

// Default configuration values.
const (
	DefaultConfigFile   = "sqlconsole.yaml"
	DefaultOutput       = "table"
	DefaultLogFormat    = "text"
	DefaultJournalPath  = ".sqlconsole/journal.db"
	DefaultQueryTimeout = 30 * time.Second

	DefaultHost              = "127.0.0.1"
	DefaultPort              = 8765
	DefaultServerSSLMode     = "require"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"table", "json", "csv", "md", "yaml"}
