package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

// File outcomes recorded by PipelineMetrics.RecordFile
const (
	FileOutcomeLoaded      = "loaded"
	FileOutcomeUnsupported = "unsupported"
	FileOutcomeFailed      = "failed"
)

// PipelineMetrics holds the instruments of the preprocessing pipeline
type PipelineMetrics struct {
	files         metric.Int64Counter
	duplicateRows metric.Int64Counter
	cellsImputed  metric.Int64Counter
	tablesWritten metric.Int64Counter
	runDuration   metric.Float64Histogram
}

// NewPipelineMetrics creates the pipeline instruments on meter. A nil meter
// yields no-op instruments.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(MeterName)
	}

	files, err := meter.Int64Counter(
		"tabprep_files_processed",
		metric.WithDescription("Manifest entries handled by the loader, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	duplicateRows, err := meter.Int64Counter(
		"tabprep_duplicate_rows_dropped",
		metric.WithDescription("Rows removed as exact duplicates"),
	)
	if err != nil {
		return nil, err
	}

	cellsImputed, err := meter.Int64Counter(
		"tabprep_cells_imputed",
		metric.WithDescription("Missing cells filled, by strategy"),
	)
	if err != nil {
		return nil, err
	}

	tablesWritten, err := meter.Int64Counter(
		"tabprep_tables_written",
		metric.WithDescription("Cleaned tables written to disk"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"tabprep_run_duration_seconds",
		metric.WithDescription("Duration of a preprocessing run in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		files:         files,
		duplicateRows: duplicateRows,
		cellsImputed:  cellsImputed,
		tablesWritten: tablesWritten,
		runDuration:   runDuration,
	}, nil
}

// RecordFile counts one manifest entry with its load outcome
func (m *PipelineMetrics) RecordFile(ctx context.Context, outcome string) {
	m.files.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordClean counts the work done by the cleaner on one table
func (m *PipelineMetrics) RecordClean(ctx context.Context, duplicates, meanImputed, sentinelFilled int) {
	m.duplicateRows.Add(ctx, int64(duplicates))
	m.cellsImputed.Add(ctx, int64(meanImputed), metric.WithAttributes(attribute.String("strategy", "mean")))
	m.cellsImputed.Add(ctx, int64(sentinelFilled), metric.WithAttributes(attribute.String("strategy", "sentinel")))
}

// RecordTableWritten counts one output file
func (m *PipelineMetrics) RecordTableWritten(ctx context.Context) {
	m.tablesWritten.Add(ctx, 1)
}

// RecordRun records the duration and final status of a run
func (m *PipelineMetrics) RecordRun(ctx context.Context, duration time.Duration, status string) {
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("status", status)))
}
