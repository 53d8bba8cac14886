package indicators

import "StratLab/internal/domain/models"

// Func computes an indicator over a frame.
type Func func(f *models.Frame, p models.Params) (Result, error)

// Result is either a single series or a table of named columns.
type Result struct {
	series  models.Series
	columns map[string]models.Series
	order   []string
}

// SeriesResult wraps a single output series.
func SeriesResult(s models.Series) Result {
	return Result{series: s}
}

// TableResult wraps a multi-column output. order fixes the column listing.
func TableResult(order []string, cols map[string]models.Series) Result {
	return Result{columns: cols, order: order}
}

// Multi reports whether the result carries named columns.
func (r Result) Multi() bool { return r.columns != nil }

// Series returns the single output (nil for tables).
func (r Result) Series() models.Series { return r.series }

// Column returns a named column of a table result.
func (r Result) Column(name string) (models.Series, bool) {
	s, ok := r.columns[name]
	return s, ok
}

// ColumnNames returns the table columns in declared order.
func (r Result) ColumnNames() []string { return r.order }
