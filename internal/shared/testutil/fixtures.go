package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tabprep/pkg/contracts/domain"
)

// WriteFile writes content to dir/name and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteXLSX writes rows to the first sheet of a new workbook at dir/name.
// Nil cells are left empty.
func WriteXLSX(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

// Entry builds a manifest entry whose display name is the base of path
func Entry(path string) domain.FileInfo {
	return domain.FileInfo{FilePath: path, FileName: filepath.Base(path)}
}

// ManifestJSON encodes entries the way FILES_INFO carries them
func ManifestJSON(t *testing.T, entries ...domain.FileInfo) string {
	t.Helper()
	if entries == nil {
		entries = []domain.FileInfo{}
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	return string(data)
}
