package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/coachgen/internal/cli/config"
	"github.com/leapstack-labs/coachgen/internal/cli/output"
	"github.com/leapstack-labs/coachgen/internal/library"
	"github.com/leapstack-labs/coachgen/internal/tabular"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Library  *library.Library
}

// NewCommandContext loads configuration and the coaching library for cmd.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx, err := NewCommandContextWithoutLibrary(cmd)
	if err != nil {
		return nil, err
	}

	lib, err := library.Load(cmdCtx.Cfg.Library.Paths, cmdCtx.Cfg.Library.SkipBuiltin)
	if err != nil {
		return nil, err
	}
	cmdCtx.Logger.Debug("coaching library loaded",
		"templates", lib.Len(),
		"sources", lib.Sources())
	cmdCtx.Library = lib

	return cmdCtx, nil
}

// NewCommandContextWithoutLibrary creates a CommandContext without a library.
// Useful for commands that only need configuration and output.
func NewCommandContextWithoutLibrary(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise loads it from
// the command's own flags so commands also work detached from the root.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", cmd.Flags())
}

// tableOptions returns the reader/writer options for the configured delimiter.
func tableOptions(cfg *config.Config) (tabular.Options, error) {
	comma, err := cfg.Comma()
	if err != nil {
		return tabular.Options{}, fmt.Errorf("invalid delimiter: %w", err)
	}
	return tabular.Options{Comma: comma}, nil
}
