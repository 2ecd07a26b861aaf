package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/credor-app/credor/internal/client/cli"
	"github.com/credor-app/credor/internal/client/config"
	"github.com/credor-app/credor/internal/logging"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "credor",
		Short:   "Terminal client for the Credor impersonation-scan service",
		Version: version,
		// Config flags (-a, -d, -k, -c) are owned by the config package's
		// flag sets; cobra must pass them through untouched.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if os.Getenv("CREDOR_DEBUG") != "" {
				level = slog.LevelDebug
			}
			log := logging.NewDefault(level)

			ctx := context.Background()
			app, err := cli.NewApp(ctx, config.LoadConfig(), log)
			if err != nil {
				return err
			}
			app.Run(ctx)
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
