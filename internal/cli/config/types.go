// Package config provides layered configuration for the jsonvet CLI.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	SchemaPath   string       `koanf:"schema"`
	OutputFormat string       `koanf:"output"`
	Verbose      bool         `koanf:"verbose"`
	Rules        *RulesConfig `koanf:"rules"`
}

// RulesConfig holds per-rule configuration from the config file.
type RulesConfig struct {
	Disabled []string          `koanf:"disabled"`
	Severity map[string]string `koanf:"severity"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix     = "JSONVET_"
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "jsonvet.yaml"
	ConfigFileNameAlt = "jsonvet.yml"
)
