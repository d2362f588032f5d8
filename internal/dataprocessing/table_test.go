package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/pkg/contracts/domain"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{
			name:   "unique names unchanged",
			header: []string{"a", "b", "c"},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "repeats numbered in order",
			header: []string{"x", "x", "y", "x"},
			want:   []string{"x", "x.1", "y", "x.2"},
		},
		{
			name:   "blank headers named by position",
			header: []string{"a", "", " "},
			want:   []string{"a", "Unnamed: 1", "Unnamed: 2"},
		},
		{
			name:   "generated name already taken",
			header: []string{"x", "x.1", "x"},
			want:   []string{"x", "x.1", "x.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeHeader(tt.header))
		})
	}
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A", "<NA>"} {
		assert.True(t, IsMissing(v), "%q", v)
	}
	for _, v := range []string{"0", "Unknown", "none", " ", "na "} {
		assert.False(t, IsMissing(v), "%q", v)
	}
}

func TestNewTable_Inference(t *testing.T) {
	table, err := NewTable("t", []string{"num", "txt", "empty", "spaced"}, [][]string{
		{"1", "a", "", " 4 "},
		{"2.5", "3", "NA", "5"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Shape{2, 4}, table.Shape())
	assert.Equal(t, KindNumeric, table.Column("num").Kind)
	assert.Equal(t, KindText, table.Column("txt").Kind)
	assert.Nil(t, table.Column("txt").Numbers)

	empty := table.Column("empty")
	assert.Equal(t, KindNumeric, empty.Kind)
	assert.True(t, math.IsNaN(empty.Numbers[0]))
	assert.Equal(t, 2, empty.MissingCount())

	spaced := table.Column("spaced")
	assert.Equal(t, KindNumeric, spaced.Kind)
	assert.Equal(t, []float64{4, 5}, spaced.Numbers)
	assert.Equal(t, " 4 ", spaced.Values[0])

	assert.Nil(t, table.Column("missing"))
	assert.Equal(t, []string{"2.5", "3", "NA", "5"}, table.Row(1))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"integer", "42", 42, false},
		{"padded decimal", " -2.5 ", -2.5, false},
		{"exponent", "1e3", 1000, false},
		{"hex float", "0x1p3", 0, true},
		{"signed hex", "-0X10", 0, true},
		{"word", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTable_HexLiteralsAreText(t *testing.T) {
	table, err := NewTable("t", []string{"code"}, [][]string{{"0x1p3"}, {"2"}})
	require.NoError(t, err)

	code := table.Column("code")
	assert.Equal(t, KindText, code.Kind)
	assert.Nil(t, code.Numbers)
}

func TestTable_CloneIsDeep(t *testing.T) {
	table, err := NewTable("t", []string{"a"}, [][]string{{"1"}})
	require.NoError(t, err)

	clone := table.Clone()
	clone.Columns[0].Values[0] = "9"
	clone.Columns[0].Numbers[0] = 9

	assert.Equal(t, "1", table.Columns[0].Values[0])
	assert.Equal(t, 1.0, table.Columns[0].Numbers[0])
}

func TestTable_RowKey(t *testing.T) {
	table, err := NewTable("t", []string{"n", "s"}, [][]string{
		{"1", "a"},
		{"1.0", "a"},
		{"", "a"},
		{"NA", "a"},
		{"1", "A"},
	})
	require.NoError(t, err)

	assert.Equal(t, table.rowKey(0), table.rowKey(1), "numeric cells compare by value")
	assert.Equal(t, table.rowKey(2), table.rowKey(3), "missing equals missing")
	assert.NotEqual(t, table.rowKey(0), table.rowKey(4))
	assert.NotEqual(t, table.rowKey(0), table.rowKey(2))
}

func TestColumnKind_String(t *testing.T) {
	assert.Equal(t, "numeric", KindNumeric.String())
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "ColumnKind(7)", ColumnKind(7).String())
}
