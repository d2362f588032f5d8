package dataprocessing

import (
	"math"
	"sort"

	"tabprep/pkg/contracts/domain"
)

// Summarize builds the report for one table from its loaded and cleaned forms
func Summarize(original, cleaned *Table) domain.TableResult {
	return domain.TableResult{
		OriginalShape:  original.Shape(),
		ProcessedShape: cleaned.Shape(),
		Columns:        cleaned.ColumnNames(),
		SummaryStats:   Describe(cleaned),
		MissingValues:  MissingCounts(cleaned),
	}
}

// Describe computes descriptive statistics keyed by column name. Numeric
// columns get a NumericSummary; only when the table has no numeric column
// are the text columns described with a CategoricalSummary.
func Describe(t *Table) map[string]any {
	stats := make(map[string]any, len(t.Columns))

	for _, col := range t.Columns {
		if col.Kind == KindNumeric {
			stats[col.Name] = describeNumeric(col)
		}
	}
	if len(stats) > 0 {
		return stats
	}

	for _, col := range t.Columns {
		stats[col.Name] = describeText(col)
	}
	return stats
}

// MissingCounts returns the number of missing cells per column
func MissingCounts(t *Table) map[string]int {
	counts := make(map[string]int, len(t.Columns))
	for _, col := range t.Columns {
		counts[col.Name] = col.MissingCount()
	}
	return counts
}

func describeNumeric(col *Column) domain.NumericSummary {
	values := make([]float64, 0, len(col.Numbers))
	for i, f := range col.Numbers {
		if !col.Missing[i] {
			values = append(values, f)
		}
	}

	summary := domain.NumericSummary{Count: len(values)}
	if len(values) == 0 {
		return summary
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	summary.Mean = finite(mean)

	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		summary.Std = finite(math.Sqrt(sq / float64(len(values)-1)))
	}

	sort.Float64s(values)
	summary.Min = finite(values[0])
	summary.Q25 = finite(quantile(values, 0.25))
	summary.Q50 = finite(quantile(values, 0.50))
	summary.Q75 = finite(quantile(values, 0.75))
	summary.Max = finite(values[len(values)-1])

	return summary
}

// finite returns nil for NaN and infinities, which have no JSON encoding.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func describeText(col *Column) domain.CategoricalSummary {
	counts := make(map[string]int)
	var order []string
	present := 0

	for i, v := range col.Values {
		if col.Missing[i] {
			continue
		}
		present++
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	summary := domain.CategoricalSummary{Count: present, Unique: len(order)}
	if present == 0 {
		return summary
	}

	top, freq := order[0], counts[order[0]]
	for _, v := range order[1:] {
		if counts[v] > freq {
			top, freq = v, counts[v]
		}
	}
	summary.Top = ptr(top)
	summary.Freq = ptr(freq)

	return summary
}

// quantile returns the q-th quantile of sorted values, interpolating
// linearly between the two nearest ranks
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func ptr[T any](v T) *T {
	return &v
}
