package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is the on-disk format of an input file
type Format int

const (
	FormatUnsupported Format = iota
	FormatCSV
	FormatExcel
)

// String implements fmt.Stringer
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatExcel:
		return "excel"
	default:
		return "unsupported"
	}
}

const utf8BOM = "\uFEFF"

// ErrNoColumns is returned for an input without a header row
var ErrNoColumns = errors.New("no columns to parse from file")

// ParseCSV reads a comma-separated file whose first record is the header
func ParseCSV(name, filePath string) (*Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return parseCSV(name, f)
}

func parseCSV(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		rows = append(rows, record)
	}

	return NewTable(name, header, rows)
}

// ParseExcel reads the first sheet of a workbook, taking the first row as
// the header. Fully blank rows are dropped and the header is widened to the
// longest row.
func ParseExcel(name, filePath string) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoColumns
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var kept [][]string
	width := 0
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		kept = append(kept, row)
		if len(row) > width {
			width = len(row)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoColumns
	}

	header := make([]string, width)
	copy(header, kept[0])

	return NewTable(name, header, kept[1:])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
