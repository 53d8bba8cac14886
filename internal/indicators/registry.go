// Package indicators computes technical indicators over OHLCV frames and
// dispatches them by name through a descriptor registry.
package indicators

import (
	"math"
	"sort"
	"strings"
	"sync"

	"StratLab/internal/domain/models"
)

// DefaultTimeframe is used when Calc receives an empty timeframe.
const DefaultTimeframe = "1d"

// Descriptor holds dispatch metadata for one indicator.
type Descriptor struct {
	Name         string
	Timeframes   []string
	Fields       []string
	DefaultField string
	// Warmup returns the length of the undefined prefix for the given params.
	Warmup func(p models.Params) int
}

// SupportsTimeframe reports whether tf (case-insensitive) is in the descriptor's set.
func (d Descriptor) SupportsTimeframe(tf string) bool {
	tf = strings.ToLower(tf)
	for _, t := range d.Timeframes {
		if strings.ToLower(t) == tf {
			return true
		}
	}
	return false
}

// ResolveField picks the output column for a multi-column result.
func (d Descriptor) ResolveField(field string) string {
	switch {
	case field != "":
		return field
	case d.DefaultField != "":
		return d.DefaultField
	case len(d.Fields) > 0:
		return d.Fields[0]
	}
	return ""
}

type entry struct {
	fn   Func
	desc Descriptor
}

// Registry maps lower-cased indicator names to compute functions.
// Populate it during bootstrap; lookups are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register stores fn under the lower-cased name. A later registration replaces an earlier one.
func (r *Registry) Register(name string, fn Func, desc Descriptor) {
	key := strings.ToLower(name)
	if desc.Name == "" {
		desc.Name = key
	}
	r.mu.Lock()
	r.entries[key] = entry{fn: fn, desc: desc}
	r.mu.Unlock()
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	e, ok := r.entries[strings.ToLower(name)]
	r.mu.RUnlock()
	return e.desc, ok
}

// Names returns the registered keys, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Descriptors returns all descriptors sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(names))
	for _, n := range names {
		out = append(out, r.entries[n].desc)
	}
	return out
}

// Warmup returns the descriptor's warm-up length for params, or 0 when unknown.
func (r *Registry) Warmup(name string, p models.Params) int {
	d, ok := r.Lookup(name)
	if !ok || d.Warmup == nil {
		return 0
	}
	return d.Warmup(p)
}

// Calc computes indicator name over f and returns a single series.
// For multi-column indicators field selects the column; an empty field falls
// back to the descriptor's default field, then its first declared field.
// All failures are returned as *CalcError.
func (r *Registry) Calc(name string, f *models.Frame, p models.Params, timeframe, field string) (models.Series, error) {
	key := strings.ToLower(name)
	tf := strings.ToLower(timeframe)
	if tf == "" {
		tf = DefaultTimeframe
	}

	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return nil, lookupError(name)
	}
	if !e.desc.SupportsTimeframe(tf) {
		return nil, timeframeError(name, timeframe)
	}
	if missing := f.MissingColumns(models.OHLCV...); len(missing) > 0 {
		return nil, missingColumnsError(name, missing)
	}
	if p == nil {
		p = models.Params{}
	}

	res, err := e.fn(f, p)
	if err != nil {
		return nil, paramsError(name, err)
	}
	if !res.Multi() {
		return finite(res.Series()), nil
	}

	chosen := e.desc.ResolveField(field)
	col, ok := res.Column(chosen)
	if chosen == "" || !ok {
		return nil, fieldError(name, chosen)
	}
	return finite(col), nil
}

// finite maps ±Inf to NaN so infinite outputs are undefined like any other gap.
// s is copied only when it holds an infinity.
func finite(s models.Series) models.Series {
	for i, v := range s {
		if !math.IsInf(v, 0) {
			continue
		}
		out := make(models.Series, len(s))
		copy(out, s)
		for j := i; j < len(out); j++ {
			if math.IsInf(out[j], 0) {
				out[j] = math.NaN()
			}
		}
		return out
	}
	return s
}
