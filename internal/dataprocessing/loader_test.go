package dataprocessing

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "tabprep/internal/errors"
	"tabprep/pkg/contracts/domain"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"data/sales.csv", FormatCSV},
		{"data/SALES.CSV", FormatCSV},
		{"book.xlsx", FormatExcel},
		{"old.XLS", FormatExcel},
		{"notes.txt", FormatUnsupported},
		{"archive.csv.gz", FormatUnsupported},
		{"noext", FormatUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"sales.csv", "sales"},
		{"report.2024.xlsx", "report.2024"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveName(tt.fileName))
		})
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "upload-1.csv", "a,b\n1,x\n")
	txtPath := writeFile(t, dir, "notes.txt", "hello")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"k", "v"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"one", 1}))
	xlsxPath := filepath.Join(dir, "upload-2.xlsx")
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())

	missing := filepath.Join(dir, "gone.csv")

	var logs bytes.Buffer
	loader := NewLoader(slog.New(slog.NewJSONHandler(&logs, nil)))

	result := loader.Load(context.Background(), []domain.FileInfo{
		{FilePath: csvPath, FileName: "sales.csv"},
		{FilePath: txtPath, FileName: "notes.txt"},
		{FilePath: missing, FileName: "gone.csv"},
		{FilePath: xlsxPath, FileName: "budget.xlsx"},
	})

	require.Len(t, result.Tables, 2)
	assert.Equal(t, "sales", result.Tables[0].Name)
	assert.Equal(t, "budget", result.Tables[1].Name)
	assert.Equal(t, domain.Shape{1, 2}, result.Tables[1].Shape())

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "notes.txt", result.Skipped[0].FileName)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "gone.csv", result.Failed[0].File.FileName)
	assert.Equal(t, apperrors.ErrTypeLoad, apperrors.TypeOf(result.Failed[0].Err))

	assert.Contains(t, logs.String(), "skipping file with unsupported extension")
	assert.Contains(t, logs.String(), "failed to load file")
}

func TestLoader_NameCollisions(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "1.csv", "a\n1\n")
	second := writeFile(t, dir, "2.csv", "a\n2\n")
	third := writeFile(t, dir, "3.csv", "a\n3\n")
	fourth := writeFile(t, dir, "4.csv", "a\n4\n")

	var logs bytes.Buffer
	loader := NewLoader(slog.New(slog.NewJSONHandler(&logs, nil)))

	result := loader.Load(context.Background(), []domain.FileInfo{
		{FilePath: first, FileName: "data.csv"},
		{FilePath: second, FileName: "data.xlsx"},
		{FilePath: third, FileName: "data_2.csv"},
		{FilePath: fourth, FileName: "data.txt"},
	})

	require.Len(t, result.Tables, 4)
	names := make([]string, len(result.Tables))
	for i, table := range result.Tables {
		names[i] = table.Name
	}
	assert.Equal(t, []string{"data", "data_2", "data_2_2", "data_3"}, names)
	assert.Contains(t, logs.String(), "table name already in use")
}

func TestLoader_EmptyManifest(t *testing.T) {
	result := NewLoader(nil).Load(context.Background(), nil)
	assert.Empty(t, result.Tables)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Failed)
}
