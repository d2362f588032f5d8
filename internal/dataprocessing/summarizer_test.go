package dataprocessing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/pkg/contracts/domain"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"single value", []float64{7}, 0.25, 7},
		{"exact rank", []float64{1, 2, 3, 4, 5}, 0.5, 3},
		{"interpolated lower quartile", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"interpolated upper quartile", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"minimum", []float64{1, 2, 3}, 0, 1},
		{"maximum", []float64{1, 2, 3}, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.values, tt.q), 1e-12)
		})
	}
}

func TestDescribe_Numeric(t *testing.T) {
	table := mustTable(t, []string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}, {"4", "w"}})

	stats := Describe(table)

	require.Len(t, stats, 1, "text columns are not described when a numeric column exists")
	a, ok := stats["a"].(domain.NumericSummary)
	require.True(t, ok)

	assert.Equal(t, 4, a.Count)
	assert.InDelta(t, 2.5, *a.Mean, 1e-12)
	assert.InDelta(t, 1.2909944487358056, *a.Std, 1e-12)
	assert.Equal(t, 1.0, *a.Min)
	assert.InDelta(t, 1.75, *a.Q25, 1e-12)
	assert.InDelta(t, 2.5, *a.Q50, 1e-12)
	assert.InDelta(t, 3.25, *a.Q75, 1e-12)
	assert.Equal(t, 4.0, *a.Max)
}

func TestDescribe_SingleValueHasNullStd(t *testing.T) {
	table := mustTable(t, []string{"a"}, [][]string{{"5"}})

	a := Describe(table)["a"].(domain.NumericSummary)
	assert.Equal(t, 1, a.Count)
	assert.Nil(t, a.Std)
	assert.Equal(t, 5.0, *a.Mean)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":1,"mean":5,"std":null,"min":5,"25%":5,"50%":5,"75%":5,"max":5}`, string(data))
}

func TestDescribe_NonFiniteStatsAreNull(t *testing.T) {
	table := mustTable(t, []string{"a"}, [][]string{{"inf"}, {"1"}})

	a := Describe(table)["a"].(domain.NumericSummary)
	assert.Equal(t, 2, a.Count)
	assert.Nil(t, a.Mean)
	assert.Nil(t, a.Std)
	assert.Equal(t, 1.0, *a.Min)
	assert.Nil(t, a.Q50)
	assert.Nil(t, a.Max)

	_, err := json.Marshal(a)
	require.NoError(t, err)
}

func TestDescribe_MissingCellsExcluded(t *testing.T) {
	table := mustTable(t, []string{"a"}, [][]string{{"2"}, {""}, {"4"}})

	a := Describe(table)["a"].(domain.NumericSummary)
	assert.Equal(t, 2, a.Count)
	assert.Equal(t, 3.0, *a.Mean)
}

func TestDescribe_TextOnly(t *testing.T) {
	table := mustTable(t, []string{"color", "size"}, [][]string{
		{"red", "s"},
		{"blue", "m"},
		{"blue", "s"},
		{"red", ""},
	})

	stats := Describe(table)
	require.Len(t, stats, 2)

	color := stats["color"].(domain.CategoricalSummary)
	assert.Equal(t, 4, color.Count)
	assert.Equal(t, 2, color.Unique)
	assert.Equal(t, "red", *color.Top, "ties go to the first value seen")
	assert.Equal(t, 2, *color.Freq)

	size := stats["size"].(domain.CategoricalSummary)
	assert.Equal(t, 3, size.Count)
	assert.Equal(t, 2, size.Unique)
	assert.Equal(t, "s", *size.Top)
	assert.Equal(t, 2, *size.Freq)
}

func TestDescribe_EmptyNumericColumn(t *testing.T) {
	table := mustTable(t, []string{"a"}, nil)

	a := Describe(table)["a"].(domain.NumericSummary)
	assert.Equal(t, 0, a.Count)
	assert.Nil(t, a.Mean)
	assert.Nil(t, a.Min)
	assert.Nil(t, a.Max)
}

func TestSummarize(t *testing.T) {
	original := mustTable(t, []string{"a", "b"}, [][]string{{"1", "x"}, {"", "y"}, {"3", "z"}})
	cleaned, _ := NewCleaner(nil).Clean(context.Background(), original)

	result := Summarize(original, cleaned)

	assert.Equal(t, domain.Shape{3, 2}, result.OriginalShape)
	assert.Equal(t, domain.Shape{3, 2}, result.ProcessedShape)
	assert.Equal(t, []string{"a", "b"}, result.Columns)
	assert.Equal(t, map[string]int{"a": 0, "b": 0}, result.MissingValues)

	a := result.SummaryStats["a"].(domain.NumericSummary)
	assert.Equal(t, 3, a.Count)
	assert.Equal(t, 2.0, *a.Mean)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"processed_shape":[3,2]`)
}

func TestMissingCounts(t *testing.T) {
	table := mustTable(t, []string{"a", "b"}, [][]string{{"", "x"}, {"NA", ""}, {"1", "y"}})
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, MissingCounts(table))
}
