package domain

// FileInfo identifies one input file of a preprocessing run.
type FileInfo struct {
	FilePath string `json:"file_path" validate:"required"`
	FileName string `json:"file_name" validate:"required"`
}

// Shape is the [rows, columns] size of a table.
type Shape [2]int

// Rows returns the row count.
func (s Shape) Rows() int { return s[0] }

// Cols returns the column count.
func (s Shape) Cols() int { return s[1] }

// TableResult is the per-table report emitted after cleaning.
// SummaryStats maps a column name to either a NumericSummary or a
// CategoricalSummary.
type TableResult struct {
	OriginalShape  Shape          `json:"original_shape"`
	ProcessedShape Shape          `json:"processed_shape"`
	Columns        []string       `json:"columns"`
	SummaryStats   map[string]any `json:"summary_stats"`
	MissingValues  map[string]int `json:"missing_values"`
}

// RunResult maps a table name to its report.
type RunResult map[string]TableResult

// NumericSummary holds the descriptive statistics of a numeric column.
// Undefined statistics are nil and encode as JSON null.
type NumericSummary struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Std   *float64 `json:"std"`
	Min   *float64 `json:"min"`
	Q25   *float64 `json:"25%"`
	Q50   *float64 `json:"50%"`
	Q75   *float64 `json:"75%"`
	Max   *float64 `json:"max"`
}

// CategoricalSummary describes a text column. It is only produced when the
// table has no numeric columns at all.
type CategoricalSummary struct {
	Count  int     `json:"count"`
	Unique int     `json:"unique"`
	Top    *string `json:"top"`
	Freq   *int    `json:"freq"`
}

// RunStatus values reported in failure responses.
const (
	RunStatusFailed = "failed"
)
