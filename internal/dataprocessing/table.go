package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tabprep/pkg/contracts/domain"
)

// ColumnKind is the inferred type of a column
type ColumnKind int

const (
	KindNumeric ColumnKind = iota
	KindText
)

// String implements fmt.Stringer
func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("ColumnKind(%d)", int(k))
	}
}

// missingMarkers are the cell texts read as a missing value
var missingMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell text denotes a missing value
func IsMissing(value string) bool {
	_, ok := missingMarkers[value]
	return ok
}

// Column is one named, typed column. Values holds the text of every cell;
// Numbers is parallel to Values for numeric columns and NaN where Missing.
type Column struct {
	Name    string
	Kind    ColumnKind
	Values  []string
	Numbers []float64
	Missing []bool
}

// Len returns the number of cells
func (c *Column) Len() int {
	return len(c.Values)
}

// MissingCount returns the number of missing cells
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// clone returns a deep copy of the column
func (c *Column) clone() *Column {
	out := &Column{
		Name:    c.Name,
		Kind:    c.Kind,
		Values:  append([]string(nil), c.Values...),
		Missing: append([]bool(nil), c.Missing...),
	}
	if c.Numbers != nil {
		out.Numbers = append([]float64(nil), c.Numbers...)
	}
	return out
}

// infer sets Kind and Numbers from the cell texts. A column whose non-missing
// cells all parse as floats is numeric; a column with no values at all is
// numeric too.
func (c *Column) infer() {
	numbers := make([]float64, len(c.Values))
	for i, v := range c.Values {
		if c.Missing[i] {
			numbers[i] = math.NaN()
			continue
		}
		f, err := parseNumber(v)
		if err != nil {
			c.Kind = KindText
			c.Numbers = nil
			return
		}
		numbers[i] = f
	}
	c.Kind = KindNumeric
	c.Numbers = numbers
}

// parseNumber parses a decimal float. Hex literals such as 0x1p3 are
// rejected even though strconv accepts them.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// Table is a named in-memory table with typed columns
type Table struct {
	Name    string
	Columns []*Column
}

// NewTable builds a table from a header and data rows, inferring column
// kinds. Short rows are padded with missing cells; a row longer than the
// header is an error.
func NewTable(name string, header []string, rows [][]string) (*Table, error) {
	names := normalizeHeader(header)

	columns := make([]*Column, len(names))
	for i, n := range names {
		columns[i] = &Column{
			Name:    n,
			Values:  make([]string, 0, len(rows)),
			Missing: make([]bool, 0, len(rows)),
		}
	}

	for r, row := range rows {
		if len(row) > len(names) {
			// header is line 1
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(names), r+2, len(row))
		}
		for c, col := range columns {
			v := ""
			if c < len(row) {
				v = row[c]
			}
			col.Values = append(col.Values, v)
			col.Missing = append(col.Missing, IsMissing(v))
		}
	}

	for _, col := range columns {
		col.infer()
	}

	return &Table{Name: name, Columns: columns}, nil
}

// normalizeHeader names blank headers "Unnamed: <i>" and renames repeats
// x, x.1, x.2 in order of appearance
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	counts := make(map[string]int, len(header))

	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		cur := counts[name]
		for cur > 0 {
			counts[name] = cur + 1
			name = fmt.Sprintf("%s.%d", name, cur)
			cur = counts[name]
		}
		names[i] = name
		counts[name] = cur + 1
	}
	return names
}

// NumRows returns the row count
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumCols returns the column count
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// Shape returns [rows, columns]
func (t *Table) Shape() domain.Shape {
	return domain.Shape{t.NumRows(), t.NumCols()}
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column or nil
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Row returns the cell texts of row i
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for c, col := range t.Columns {
		row[c] = col.Values[i]
	}
	return row
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: make([]*Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = c.clone()
	}
	return out
}

// selectRows returns a new table holding only the given rows, in order
func (t *Table) selectRows(rows []int) *Table {
	out := &Table{Name: t.Name, Columns: make([]*Column, len(t.Columns))}
	for i, c := range t.Columns {
		nc := &Column{
			Name:    c.Name,
			Kind:    c.Kind,
			Values:  make([]string, len(rows)),
			Missing: make([]bool, len(rows)),
		}
		if c.Numbers != nil {
			nc.Numbers = make([]float64, len(rows))
		}
		for j, r := range rows {
			nc.Values[j] = c.Values[r]
			nc.Missing[j] = c.Missing[r]
			if c.Numbers != nil {
				nc.Numbers[j] = c.Numbers[r]
			}
		}
		out.Columns[i] = nc
	}
	return out
}

// rowKey identifies a row for duplicate detection. Numeric cells compare by
// value and every missing cell compares equal to every other.
func (t *Table) rowKey(i int) string {
	var b strings.Builder
	for c, col := range t.Columns {
		if c > 0 {
			b.WriteByte(0x1f)
		}
		switch {
		case col.Missing[i]:
			b.WriteString("\x00NA")
		case col.Kind == KindNumeric:
			b.WriteString(strconv.FormatFloat(col.Numbers[i], 'g', -1, 64))
		default:
			b.WriteString(col.Values[i])
		}
	}
	return b.String()
}
