package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
)

// Sentinel fills missing cells that have no mean to impute
const Sentinel = "Unknown"

// CleanStats counts what the cleaner changed in one table
type CleanStats struct {
	DuplicatesDropped int
	MeanImputed       int
	SentinelFilled    int
}

// Cleaner applies the fixed cleaning policy: drop duplicate rows, impute
// numeric columns with their mean, fill what is left with Sentinel
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a new cleaner
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean returns a cleaned copy of t. The input table is not modified.
func (c *Cleaner) Clean(ctx context.Context, t *Table) (*Table, CleanStats) {
	var stats CleanStats

	out := dropDuplicates(t)
	stats.DuplicatesDropped = t.NumRows() - out.NumRows()

	for _, col := range out.Columns {
		if col.Kind == KindNumeric {
			stats.MeanImputed += imputeMean(col)
		}
	}

	for _, col := range out.Columns {
		stats.SentinelFilled += fillSentinel(col)
	}

	c.logger.DebugContext(ctx, "cleaned table",
		slog.String("table", t.Name),
		slog.Int("duplicates_dropped", stats.DuplicatesDropped),
		slog.Int("mean_imputed", stats.MeanImputed),
		slog.Int("sentinel_filled", stats.SentinelFilled))

	return out, stats
}

// dropDuplicates keeps the first occurrence of every distinct row
func dropDuplicates(t *Table) *Table {
	n := t.NumRows()
	seen := make(map[string]struct{}, n)
	keep := make([]int, 0, n)

	for i := 0; i < n; i++ {
		key := t.rowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	return t.selectRows(keep)
}

// imputeMean replaces the missing cells of a numeric column with the mean of
// its present cells and returns how many were filled. A column without any
// present cell is left alone.
func imputeMean(col *Column) int {
	var (
		sum   float64
		count int
	)
	for i, f := range col.Numbers {
		if !col.Missing[i] {
			sum += f
			count++
		}
	}
	if count == 0 {
		return 0
	}

	mean := sum / float64(count)
	text := strconv.FormatFloat(mean, 'f', -1, 64)

	filled := 0
	for i := range col.Values {
		if col.Missing[i] {
			col.Values[i] = text
			col.Numbers[i] = mean
			col.Missing[i] = false
			filled++
		}
	}
	return filled
}

// fillSentinel replaces every remaining missing cell with Sentinel. A
// numeric column that receives the sentinel becomes a text column.
func fillSentinel(col *Column) int {
	filled := 0
	for i := range col.Values {
		if col.Missing[i] {
			col.Values[i] = Sentinel
			col.Missing[i] = false
			filled++
		}
	}
	if filled > 0 && col.Kind == KindNumeric {
		col.Kind = KindText
		col.Numbers = nil
	}
	return filled
}
