package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "tabprep/internal/errors"
	"tabprep/pkg/contracts/domain"
)

// LoadFailure records a manifest entry that could not be read
type LoadFailure struct {
	File domain.FileInfo
	Err  error
}

// LoadResult is the outcome of loading a manifest
type LoadResult struct {
	Tables  []*Table
	Skipped []domain.FileInfo
	Failed  []LoadFailure
}

// Loader reads the files named by a manifest into tables
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// DetectFormat chooses a reader from the extension of the file path
func DetectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return FormatCSV
	case ".xls", ".xlsx":
		return FormatExcel
	default:
		return FormatUnsupported
	}
}

// DeriveName strips the last extension from the display name
func DeriveName(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if name == "" {
		return fileName
	}
	return name
}

// Load reads every supported file in order. Unsupported extensions are
// skipped and unreadable files are recorded; neither stops the run. Loaded
// tables whose derived names collide get _2, _3 suffixes.
func (l *Loader) Load(ctx context.Context, files []domain.FileInfo) *LoadResult {
	result := &LoadResult{}
	used := make(map[string]int, len(files))

	for _, file := range files {
		format := DetectFormat(file.FilePath)
		if format == FormatUnsupported {
			l.logger.InfoContext(ctx, "skipping file with unsupported extension",
				slog.String("file_path", file.FilePath),
				slog.String("file_name", file.FileName))
			result.Skipped = append(result.Skipped, file)
			continue
		}

		name := DeriveName(file.FileName)

		var (
			table *Table
			err   error
		)
		switch format {
		case FormatCSV:
			table, err = ParseCSV(name, file.FilePath)
		case FormatExcel:
			table, err = ParseExcel(name, file.FilePath)
		}
		if err != nil {
			loadErr := apperrors.NewLoadError(fmt.Sprintf("failed to load %s", file.FileName), err).
				WithContext("file_path", file.FilePath)
			l.logger.ErrorContext(ctx, "failed to load file",
				slog.String("file_path", file.FilePath),
				slog.String("format", format.String()),
				slog.String("error", err.Error()))
			result.Failed = append(result.Failed, LoadFailure{File: file, Err: loadErr})
			continue
		}

		table.Name = l.uniqueName(ctx, name, used)

		l.logger.InfoContext(ctx, "loaded table",
			slog.String("table", table.Name),
			slog.String("format", format.String()),
			slog.Int("rows", table.NumRows()),
			slog.Int("columns", table.NumCols()))
		result.Tables = append(result.Tables, table)
	}

	return result
}

// uniqueName reserves name in used, suffixing it when already taken
func (l *Loader) uniqueName(ctx context.Context, name string, used map[string]int) string {
	n, taken := used[name]
	if !taken {
		used[name] = 1
		return name
	}

	candidate := name
	for taken {
		n++
		candidate = fmt.Sprintf("%s_%d", name, n)
		_, taken = used[candidate]
	}
	used[name] = n
	used[candidate] = 1

	l.logger.WarnContext(ctx, "table name already in use, renaming",
		slog.String("name", name),
		slog.String("renamed_to", candidate))
	return candidate
}
