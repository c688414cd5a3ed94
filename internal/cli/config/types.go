// Package config provides configuration management for the sqlgate CLI.
//
// Configuration is layered: built-in defaults, then an optional
// sqlgate.yaml file, then SQLGATE_-prefixed environment variables, then
// command-line flags. Later layers override earlier ones.
package config

// RLSConfig holds settings for the row-level security rewrite command.
type RLSConfig struct {
	DSN        string `koanf:"dsn"`
	DatabaseID int    `koanf:"database_id"`
	Schema     string `koanf:"schema"`
}

// Config holds all CLI configuration options.
type Config struct {
	Engine       string     `koanf:"engine"`
	MaxLimit     int        `koanf:"max_limit"`
	Verbose      bool       `koanf:"verbose"`
	OutputFormat string     `koanf:"output"`
	RLS          *RLSConfig `koanf:"rls"`
}

// Default configuration values.
const (
	DefaultEngine   = "postgres"
	DefaultMaxLimit = 1000
	DefaultOutput   = "table"
)
