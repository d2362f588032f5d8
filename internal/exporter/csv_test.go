package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/internal/config"
	"tabprep/internal/dataprocessing"
)

func newTable(t *testing.T, name string, header []string, rows [][]string) *dataprocessing.Table {
	t.Helper()
	table, err := dataprocessing.NewTable(name, header, rows)
	require.NoError(t, err)
	return table
}

func TestNewCSVWriter(t *testing.T) {
	output := config.OutputConfig{Dir: "out", Delimiter: ","}
	writer := NewCSVWriter(output, nil)

	assert.NotNil(t, writer)
	assert.Equal(t, output, writer.output)
	assert.NotNil(t, writer.logger)
}

func TestCSVWriter_WriteTable(t *testing.T) {
	tests := []struct {
		name     string
		output   func(dir string) config.OutputConfig
		table    func(t *testing.T) *dataprocessing.Table
		wantFile string
		validate func(t *testing.T, content []byte)
	}{
		{
			name: "header and rows without index",
			output: func(dir string) config.OutputConfig {
				return config.OutputConfig{Dir: dir, Delimiter: ","}
			},
			table: func(t *testing.T) *dataprocessing.Table {
				return newTable(t, "sales", []string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}})
			},
			wantFile: "processed_sales.csv",
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "a,b\n1,x\n2,y\n", string(content))
			},
		},
		{
			name: "semicolon delimiter with BOM",
			output: func(dir string) config.OutputConfig {
				return config.OutputConfig{Dir: dir, Delimiter: ";", BOM: true}
			},
			table: func(t *testing.T) *dataprocessing.Table {
				return newTable(t, "eu", []string{"price", "label"}, [][]string{{"1.5", "a;b"}})
			},
			wantFile: "processed_eu.csv",
			validate: func(t *testing.T, content []byte) {
				require.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))
				assert.Equal(t, "price;label\n1.5;\"a;b\"\n", string(content[3:]))
			},
		},
		{
			name: "special characters are quoted",
			output: func(dir string) config.OutputConfig {
				return config.OutputConfig{Dir: dir, Delimiter: ","}
			},
			table: func(t *testing.T) *dataprocessing.Table {
				return newTable(t, "notes", []string{"text"}, [][]string{{"he said \"hi\""}, {"a,b"}, {"line1\nline2"}})
			},
			wantFile: "processed_notes.csv",
			validate: func(t *testing.T, content []byte) {
				records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
				require.NoError(t, err)
				assert.Equal(t, [][]string{{"text"}, {"he said \"hi\""}, {"a,b"}, {"line1\nline2"}}, records)
			},
		},
		{
			name: "header only for empty table",
			output: func(dir string) config.OutputConfig {
				return config.OutputConfig{Dir: dir, Delimiter: ","}
			},
			table: func(t *testing.T) *dataprocessing.Table {
				return newTable(t, "empty", []string{"a", "b"}, nil)
			},
			wantFile: "processed_empty.csv",
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "a,b\n", string(content))
			},
		},
		{
			name: "output directory created",
			output: func(dir string) config.OutputConfig {
				return config.OutputConfig{Dir: filepath.Join(dir, "nested", "out"), Delimiter: ","}
			},
			table: func(t *testing.T) *dataprocessing.Table {
				return newTable(t, "deep", []string{"a"}, [][]string{{"1"}})
			},
			wantFile: filepath.Join("nested", "out", "processed_deep.csv"),
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "a\n1\n", string(content))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writer := NewCSVWriter(tt.output(dir), nil)

			path, err := writer.WriteTable(context.Background(), tt.table(t))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.wantFile), path)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.validate(t, content)
		})
	}
}

func TestCSVWriter_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(config.OutputConfig{Dir: dir, Delimiter: ","}, nil)

	_, err := writer.WriteTable(context.Background(), newTable(t, "t", []string{"a"}, [][]string{{"1"}, {"2"}, {"3"}}))
	require.NoError(t, err)
	path, err := writer.WriteTable(context.Background(), newTable(t, "t", []string{"b"}, [][]string{{"9"}}))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b\n9\n", string(content))
}

func TestCSVWriter_ErrorScenarios(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0644))

	// the output dir is a regular file
	writer := NewCSVWriter(config.OutputConfig{Dir: blocker, Delimiter: ","}, nil)

	_, err := writer.WriteTable(context.Background(), newTable(t, "t", []string{"a"}, [][]string{{"1"}}))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to create directory") ||
		strings.Contains(err.Error(), "failed to create file"))
}
