package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldstack-labs/jsonvet/internal/cli/config"
	"github.com/fieldstack-labs/jsonvet/internal/cli/output"
)

// CommandContext bundles the shared collaborators of a command invocation.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables. The fallback keeps commands usable in tests that
// bypass the root command's PersistentPreRunE.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		SchemaPath:   os.Getenv("JSONVET_SCHEMA"),
		OutputFormat: getEnvOrDefault("JSONVET_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("JSONVET_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
