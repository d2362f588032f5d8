package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tabprep/internal/config"
	"tabprep/internal/dataprocessing"
)

// CSVWriter writes cleaned tables to the output directory
type CSVWriter struct {
	output config.OutputConfig
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(output config.OutputConfig, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{output: output, logger: logger}
}

// WriteTable writes t to <dir>/processed_<name>.csv with a header row and
// no index column, replacing any existing file. It returns the path written.
func (w *CSVWriter) WriteTable(ctx context.Context, t *dataprocessing.Table) (string, error) {
	path := w.output.ProcessedPath(t.Name)

	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("table", t.Name),
		slog.String("full_path", path),
		slog.Int("record_count", t.NumRows()))

	stream, err := w.CreateStreamWriter(path, t.ColumnNames())
	if err != nil {
		return "", err
	}

	for i := 0; i < t.NumRows(); i++ {
		if err := stream.WriteRecord(t.Row(i)); err != nil {
			stream.Close()
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}

	w.logger.InfoContext(ctx, "Saved processed data", slog.String("full_path", path))
	return path, nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates the file at path, writes the optional BOM and
// the header, and returns a writer for the records
func (w *CSVWriter) CreateStreamWriter(path string, headers []string) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	// Excel only detects UTF-8 with a BOM
	if w.output.BOM {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	writer.Comma = w.output.DelimiterRune()

	if err := writer.Write(headers); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
