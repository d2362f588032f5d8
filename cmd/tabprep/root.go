package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"tabprep/internal/config"
	apperrors "tabprep/internal/errors"
	"tabprep/internal/infrastructure"
	"tabprep/pkg/contracts"
)

// errReported marks a failure that has already been written to stdout
var errReported = errors.New("failure already reported")

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tabprep",
		Short: "Clean tabular files and report their statistics",
		Long: `tabprep loads the CSV and Excel files named by a manifest, drops duplicate
rows, imputes missing cells and writes processed_<name>.csv for each table.

Configuration comes from defaults, then tabprep.yaml (or --config), then
TABPREP_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       contracts.GetFullVersionString(),
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(newRunCommand(flags))
	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// execute runs the command tree and returns the process exit code
func execute(rootCmd *cobra.Command) int {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSONLine(cmd.OutOrStdout(), contracts.GetVersionInfo())
		},
	}
}

// loadConfig loads configuration and builds a logger writing to the
// command's stderr
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("failed to load configuration", err)
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, apperrors.NewConfigError("failed to initialize logger", err)
	}
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// reportFailure prints the failure object as the single stdout line
func reportFailure(out io.Writer, err error) error {
	if werr := writeJSONLine(out, apperrors.NewFailureResponse(err)); werr != nil {
		return werr
	}
	return errReported
}

// writeJSONLine writes v as one line of JSON
func writeJSONLine(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
