package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/pkg/contracts/domain"
)

func mustTable(t *testing.T, header []string, rows [][]string) *Table {
	t.Helper()
	table, err := NewTable("t", header, rows)
	require.NoError(t, err)
	return table
}

func TestCleaner_Clean(t *testing.T) {
	tests := []struct {
		name      string
		header    []string
		rows      [][]string
		wantShape domain.Shape
		wantRows  [][]string
		wantStats CleanStats
	}{
		{
			name:      "mean imputed in numeric column",
			header:    []string{"a", "b"},
			rows:      [][]string{{"1", "x"}, {"", "y"}, {"3", "z"}},
			wantShape: domain.Shape{3, 2},
			wantRows:  [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}},
			wantStats: CleanStats{MeanImputed: 1},
		},
		{
			name:      "duplicates dropped keeping first",
			header:    []string{"a", "b"},
			rows:      [][]string{{"1", "x"}, {"2", "y"}, {"1", "x"}, {"1.0", "x"}},
			wantShape: domain.Shape{2, 2},
			wantRows:  [][]string{{"1", "x"}, {"2", "y"}},
			wantStats: CleanStats{DuplicatesDropped: 2},
		},
		{
			name:      "missing rows count as duplicates of each other",
			header:    []string{"a", "b"},
			rows:      [][]string{{"", "NA"}, {"NA", ""}, {"4", "q"}},
			wantShape: domain.Shape{2, 2},
			wantRows:  [][]string{{"4", Sentinel}, {"4", "q"}},
			wantStats: CleanStats{DuplicatesDropped: 1, MeanImputed: 1, SentinelFilled: 1},
		},
		{
			name:      "mean taken after dedup",
			header:    []string{"a", "k"},
			rows:      [][]string{{"10", "p"}, {"10", "p"}, {"10", "p"}, {"1", "q"}, {"", "r"}},
			wantShape: domain.Shape{3, 2},
			wantRows:  [][]string{{"10", "p"}, {"1", "q"}, {"5.5", "r"}},
			wantStats: CleanStats{DuplicatesDropped: 2, MeanImputed: 1},
		},
		{
			name:      "text column filled with sentinel",
			header:    []string{"s"},
			rows:      [][]string{{"a"}, {"null"}},
			wantShape: domain.Shape{2, 1},
			wantRows:  [][]string{{"a"}, {Sentinel}},
			wantStats: CleanStats{SentinelFilled: 1},
		},
		{
			name:      "no rows",
			header:    []string{"a"},
			rows:      nil,
			wantShape: domain.Shape{0, 1},
			wantRows:  nil,
		},
	}

	cleaner := NewCleaner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := mustTable(t, tt.header, tt.rows)

			cleaned, stats := cleaner.Clean(context.Background(), table)

			assert.Equal(t, tt.wantShape, cleaned.Shape())
			assert.Equal(t, tt.wantStats, stats)
			for i, want := range tt.wantRows {
				assert.Equal(t, want, cleaned.Row(i), "row %d", i)
			}
			for _, col := range cleaned.Columns {
				assert.Zero(t, col.MissingCount(), "column %s", col.Name)
			}
		})
	}
}

func TestCleaner_InputUntouched(t *testing.T) {
	table := mustTable(t, []string{"a", "b"}, [][]string{{"1", ""}, {"", "x"}, {"1", ""}})

	_, _ = NewCleaner(nil).Clean(context.Background(), table)

	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, 1, table.Column("a").MissingCount())
	assert.Equal(t, 2, table.Column("b").MissingCount())
	assert.Equal(t, "", table.Column("a").Values[1])
}

func TestCleaner_AllMissingNumericBecomesText(t *testing.T) {
	table := mustTable(t, []string{"a", "b"}, [][]string{{"", "1"}, {"NA", "2"}})
	require.Equal(t, KindNumeric, table.Column("a").Kind)

	cleaned, stats := NewCleaner(nil).Clean(context.Background(), table)

	a := cleaned.Column("a")
	assert.Equal(t, KindText, a.Kind)
	assert.Nil(t, a.Numbers)
	assert.Equal(t, []string{Sentinel, Sentinel}, a.Values)
	assert.Equal(t, 2, stats.SentinelFilled)
	assert.Equal(t, KindNumeric, cleaned.Column("b").Kind)
}

func TestCleaner_ImputedValueIsMean(t *testing.T) {
	table := mustTable(t, []string{"v"}, [][]string{{"1"}, {"2"}, {""}, {"4"}})

	cleaned, _ := NewCleaner(nil).Clean(context.Background(), table)

	v := cleaned.Column("v")
	assert.InDelta(t, 7.0/3.0, v.Numbers[2], 1e-12)
	assert.Equal(t, "2.3333333333333335", v.Values[2])
}

func TestCleaner_DistinctRowCount(t *testing.T) {
	rows := [][]string{
		{"1", "a"}, {"2", "b"}, {"1", "a"}, {"3", "c"}, {"2", "b"}, {"2", "c"},
	}
	table := mustTable(t, []string{"n", "s"}, rows)

	distinct := make(map[string]struct{})
	for i := 0; i < table.NumRows(); i++ {
		distinct[table.rowKey(i)] = struct{}{}
	}

	cleaned, stats := NewCleaner(nil).Clean(context.Background(), table)
	assert.Equal(t, len(distinct), cleaned.NumRows())
	assert.Equal(t, len(rows)-len(distinct), stats.DuplicatesDropped)
}
