package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tabprep/internal/app"
	apperrors "tabprep/internal/errors"
	"tabprep/internal/files"
	"tabprep/internal/infrastructure"
	"tabprep/internal/manifest"
	"tabprep/pkg/contracts/domain"
)

type runFlags struct {
	manifestPath string
	inputDir     string
}

func newRunCommand(global *globalFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the files named by the manifest once",
		Long: `Process the files named by the manifest and print one JSON line: the
per-table results, or {"error", "status": "failed", "kind"} on failure.

The manifest is read from --manifest (JSON with comments allowed), built
from every CSV and Excel file in --input-dir, or taken from the FILES_INFO
environment variable.

Examples:
  FILES_INFO='[{"file_path":"/data/u1.csv","file_name":"sales.csv"}]' tabprep run
  tabprep run --manifest files.jsonc
  tabprep run --input-dir uploads`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.manifestPath, "manifest", "", "Path to a JSON or JSONC manifest file")
	cmd.Flags().StringVar(&flags.inputDir, "input-dir", "", "Process every CSV and Excel file in this directory")
	cmd.MarkFlagsMutuallyExclusive("manifest", "input-dir")

	return cmd
}

func runBatch(cmd *cobra.Command, global *globalFlags, flags *runFlags) error {
	out := cmd.OutOrStdout()

	cfg, logger, err := loadConfig(cmd, global)
	if err != nil {
		return reportFailure(out, err)
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.WithTraceID(ctx, infrastructure.GenerateTraceID())

	entries, err := readManifest(cfg.FilesInfo, flags)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read manifest", slog.String("error", err.Error()))
		return reportFailure(out, err)
	}

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		return reportFailure(out, apperrors.NewConfigError("failed to initialize application", err))
	}
	defer func() {
		if err := application.Close(context.WithoutCancel(ctx)); err != nil {
			logger.WarnContext(ctx, "Failed to shut down telemetry", slog.String("error", err.Error()))
		}
	}()

	result, err := application.RunBatch(ctx, entries)
	if err != nil {
		return reportFailure(out, err)
	}
	if err := writeJSONLine(out, result); err != nil {
		return reportFailure(out, apperrors.NewProcessingError("failed to encode result", err))
	}
	return nil
}

// readManifest prefers the manifest file, then the input directory, over the
// FILES_INFO value
func readManifest(filesInfo string, flags *runFlags) ([]domain.FileInfo, error) {
	switch {
	case flags.manifestPath != "":
		return manifest.ParseFile(flags.manifestPath)
	case flags.inputDir != "":
		entries, err := files.NewDiscovery("").FindTableFiles(flags.inputDir)
		if err != nil {
			return nil, apperrors.NewManifestError("failed to list input directory", err)
		}
		return entries, nil
	default:
		return manifest.Parse([]byte(filesInfo))
	}
}
