package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"tabprep/internal/app"
	"tabprep/internal/config"
	apperrors "tabprep/internal/errors"
	"tabprep/internal/infrastructure"
)

type serveFlags struct {
	addr string
}

func newServeCommand(global *globalFlags) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Long: `Serve POST /api/v1/preprocess with a body of {"files": [...]}. Runs are
serialized; health checks are at /healthz and /readyz and metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(global.configPath)
			if err != nil {
				return apperrors.NewConfigError("failed to load configuration", err)
			}
			if flags.addr != "" {
				cfg.Server.Addr = flags.addr
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return apperrors.NewConfigError("failed to prepare directories", err)
			}

			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return apperrors.NewConfigError("failed to initialize logger", err)
			}
			defer infrastructure.CloseLogFile()

			application, err := app.NewApplication(cfg, logger)
			if err != nil {
				return err
			}

			if err := application.Run(cmd.Context()); err != nil {
				logger.Error("Application error", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "Listen address, overrides server.addr")

	return cmd
}
