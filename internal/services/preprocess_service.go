package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"tabprep/internal/config"
	"tabprep/internal/dataprocessing"
	apperrors "tabprep/internal/errors"
	"tabprep/internal/exporter"
	"tabprep/internal/infrastructure"
	"tabprep/internal/validation"
	"tabprep/pkg/contracts/domain"
)

// Run statuses recorded with the run duration metric
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = domain.RunStatusFailed
)

// TableWriter persists a cleaned table and returns where it was written
type TableWriter interface {
	WriteTable(ctx context.Context, t *dataprocessing.Table) (string, error)
}

// PreprocessService runs the load, clean, report and write pipeline over a
// list of input files
type PreprocessService struct {
	output    config.OutputConfig
	loader    *dataprocessing.Loader
	cleaner   *dataprocessing.Cleaner
	writer    TableWriter
	validator *validation.FileValidator
	tracer    trace.Tracer
	metrics   *infrastructure.PipelineMetrics
	logger    *slog.Logger
}

// NewPreprocessService creates the pipeline. providers may be nil, in which
// case spans and metrics are discarded.
func NewPreprocessService(output config.OutputConfig, providers *infrastructure.OTelProviders, logger *slog.Logger) (*PreprocessService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "preprocess")

	tracer := noop.NewTracerProvider().Tracer(infrastructure.TracerName)
	var meter metric.Meter
	if providers != nil {
		tracer = providers.Tracer
		meter = providers.Meter
	}

	metrics, err := infrastructure.NewPipelineMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	return &PreprocessService{
		output:    output,
		loader:    dataprocessing.NewLoader(logger),
		cleaner:   dataprocessing.NewCleaner(logger),
		writer:    exporter.NewCSVWriter(output, logger),
		validator: validation.NewFileValidator(logger),
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// WithWriter replaces the table writer
func (s *PreprocessService) WithWriter(w TableWriter) *PreprocessService {
	s.writer = w
	return s
}

// Run processes files in order and returns one report per loaded table.
// Unsupported and unreadable files are left out of the result. Any other
// failure aborts the run with a classified error and no result; tables
// written before the failure stay on disk.
func (s *PreprocessService) Run(ctx context.Context, files []domain.FileInfo) (result domain.RunResult, err error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "preprocess.run",
		trace.WithAttributes(attribute.Int("files.count", len(files))))
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = apperrors.NewProcessingError("unexpected failure", fmt.Errorf("panic: %v", rec))
		}

		status := RunStatusSucceeded
		if err != nil {
			status = RunStatusFailed
			infrastructure.RecordError(ctx, err)
			s.logger.ErrorContext(ctx, "Preprocessing run failed",
				slog.String("kind", string(apperrors.TypeOf(err))),
				slog.String("error", err.Error()))
		}
		s.metrics.RecordRun(ctx, time.Since(start), status)
	}()

	s.logger.InfoContext(ctx, "Starting preprocessing run",
		slog.Int("file_count", len(files)),
		slog.String("output_dir", s.output.Dir))

	if failures := s.validator.ValidateEntries(files); len(failures) > 0 {
		return nil, apperrors.NewManifestValidationError(failures)
	}

	loaded := s.load(ctx, files)

	if len(loaded.Tables) > 0 {
		if err := s.validator.ValidateOutputDirectory(s.output.Dir); err != nil {
			return nil, apperrors.NewWriteError("output directory unavailable", err)
		}
	}

	result = make(domain.RunResult, len(loaded.Tables))
	for _, table := range loaded.Tables {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewProcessingError("run cancelled", err)
		}

		report, err := s.processTable(ctx, table)
		if err != nil {
			return nil, err
		}
		result[table.Name] = report
	}

	s.logger.InfoContext(ctx, "Preprocessing run completed",
		slog.Int("tables", len(result)),
		slog.Int("skipped", len(loaded.Skipped)),
		slog.Int("failed", len(loaded.Failed)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// load reads every entry and records the outcome of each one
func (s *PreprocessService) load(ctx context.Context, files []domain.FileInfo) *dataprocessing.LoadResult {
	ctx, span := s.tracer.Start(ctx, "preprocess.load")
	defer span.End()

	loaded := s.loader.Load(ctx, files)

	for range loaded.Tables {
		s.metrics.RecordFile(ctx, infrastructure.FileOutcomeLoaded)
	}
	for range loaded.Skipped {
		s.metrics.RecordFile(ctx, infrastructure.FileOutcomeUnsupported)
	}
	for range loaded.Failed {
		s.metrics.RecordFile(ctx, infrastructure.FileOutcomeFailed)
	}

	span.SetAttributes(
		attribute.Int("tables.loaded", len(loaded.Tables)),
		attribute.Int("files.skipped", len(loaded.Skipped)),
		attribute.Int("files.failed", len(loaded.Failed)),
	)
	return loaded
}

// processTable cleans, reports and writes one table
func (s *PreprocessService) processTable(ctx context.Context, table *dataprocessing.Table) (domain.TableResult, error) {
	ctx, span := s.tracer.Start(ctx, "preprocess.table",
		trace.WithAttributes(attribute.String("table.name", table.Name)))
	defer span.End()

	cleaned, stats := s.cleaner.Clean(ctx, table)
	s.metrics.RecordClean(ctx, stats.DuplicatesDropped, stats.MeanImputed, stats.SentinelFilled)

	report := dataprocessing.Summarize(table, cleaned)

	path, err := s.writer.WriteTable(ctx, cleaned)
	if err != nil {
		return domain.TableResult{}, apperrors.NewWriteError(
			fmt.Sprintf("failed to write processed table %s", table.Name), err).
			WithContext("table", table.Name)
	}
	s.metrics.RecordTableWritten(ctx)

	span.SetAttributes(
		attribute.Int("rows.original", report.OriginalShape.Rows()),
		attribute.Int("rows.processed", report.ProcessedShape.Rows()),
	)
	s.logger.InfoContext(ctx, "Processed table",
		slog.String("table", table.Name),
		slog.Any("original_shape", report.OriginalShape),
		slog.Any("processed_shape", report.ProcessedShape),
		slog.Int("duplicates_dropped", stats.DuplicatesDropped),
		slog.Int("mean_imputed", stats.MeanImputed),
		slog.Int("sentinel_filled", stats.SentinelFilled),
		slog.String("path", path))

	return report, nil
}
