package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/reversi-client/internal/config"
)

// Setup - loads the configuration from path (discovered when empty) and builds the logger.
// A non-empty level overrides the configured one.
type Setup func(path, level string) (*config.Config, *slog.Logger)

func Root(setup Setup) *cobra.Command {
	root := &cobra.Command{
		Use:   "reversi",
		Short: "Play reversi against a friend, the engine or someone online",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// global flags
	root.PersistentFlags().String("config", "", "Path to the config file (default: $XDG_CONFIG_HOME/reversi/config.yml)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	load := func(cmd *cobra.Command) (*config.Config, *slog.Logger) {
		path, _ := cmd.Flags().GetString("config")
		level, _ := cmd.Flags().GetString("log-level")

		return setup(path, level)
	}

	root.AddCommand(Play(load))
	root.AddCommand(Online(load))
	root.AddCommand(History(load))

	return root
}

type loader func(cmd *cobra.Command) (*config.Config, *slog.Logger)
