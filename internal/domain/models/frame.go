package models

import (
	"math"
	"sort"
	"time"
)

// OHLCV column names.
const (
	ColOpen   = "open"
	ColHigh   = "high"
	ColLow    = "low"
	ColClose  = "close"
	ColVolume = "volume"
)

// OHLCV lists the columns every frame must carry for indicator dispatch.
var OHLCV = []string{ColOpen, ColHigh, ColLow, ColClose, ColVolume}

// Series is a numeric column aligned with a frame index. Undefined values are NaN.
type Series []float64

// NaNSeries returns a series of length n filled with NaN.
func NaNSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// LeadingNaN counts the undefined prefix of s.
func (s Series) LeadingNaN() int {
	for i, v := range s {
		if !math.IsNaN(v) {
			return i
		}
	}
	return len(s)
}

// Last returns the final value (NaN for an empty series).
func (s Series) Last() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

// Bar is a single daily price row.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Frame is an ordered time series of named numeric columns.
// Rows are expected in ascending date order; the frame does not sort them.
type Frame struct {
	Index   []time.Time
	columns map[string]Series
}

// NewFrame builds a full OHLCV frame from bars.
func NewFrame(bars []Bar) *Frame {
	n := len(bars)
	f := &Frame{
		Index:   make([]time.Time, n),
		columns: make(map[string]Series, len(OHLCV)),
	}
	open, high, low, cls, vol := make(Series, n), make(Series, n), make(Series, n), make(Series, n), make(Series, n)
	for i, b := range bars {
		f.Index[i] = b.Date
		open[i], high[i], low[i], cls[i], vol[i] = b.Open, b.High, b.Low, b.Close, b.Volume
	}
	f.columns[ColOpen] = open
	f.columns[ColHigh] = high
	f.columns[ColLow] = low
	f.columns[ColClose] = cls
	f.columns[ColVolume] = vol
	return f
}

// FrameFromColumns builds a frame from arbitrary columns. Columns shorter or
// longer than the index are accepted as given; callers own the alignment.
func FrameFromColumns(index []time.Time, cols map[string]Series) *Frame {
	f := &Frame{Index: index, columns: make(map[string]Series, len(cols))}
	for k, v := range cols {
		f.columns[k] = v
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	if len(f.Index) > 0 {
		return len(f.Index)
	}
	for _, c := range f.columns {
		return len(c)
	}
	return 0
}

// Column returns the named column.
func (f *Frame) Column(name string) (Series, bool) {
	if f == nil {
		return nil, false
	}
	s, ok := f.columns[name]
	return s, ok
}

// Columns returns the sorted column names.
func (f *Frame) Columns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.columns))
	for k := range f.columns {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MissingColumns returns the sorted subset of names not present in the frame.
func (f *Frame) MissingColumns(names ...string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := f.Column(n); !ok {
			missing = append(missing, n)
		}
	}
	sort.Strings(missing)
	return missing
}

// WithColumn returns a shallow clone of f with name replaced by s.
// The receiver is not modified.
func (f *Frame) WithColumn(name string, s Series) *Frame {
	out := &Frame{Index: f.Index, columns: make(map[string]Series, len(f.columns)+1)}
	for k, v := range f.columns {
		out.columns[k] = v
	}
	out.columns[name] = s
	return out
}
