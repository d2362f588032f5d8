// Package exporter writes cleaned tables to disk as CSV.
//
// CSVWriter places each table at <output dir>/processed_<name>.csv with a
// header row and no index column, using the delimiter and optional UTF-8
// BOM from the output configuration. Existing files are replaced.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(cfg.Output, logger)
//	path, err := writer.WriteTable(ctx, cleaned)
package exporter
