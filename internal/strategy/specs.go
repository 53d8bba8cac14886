package strategy

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"StratLab/internal/domain/models"
)

// IndicatorSpec describes how an indicator's params and output fields are validated.
type IndicatorSpec struct {
	// Validate returns nil or an error describing the first bad param.
	// A *ParamError pins the error to a single param.
	Validate func(p models.Params) error
	// Fields lists the selectable outputs; empty for single-series indicators.
	Fields       []string
	DefaultField string
}

// ParamError is a params violation. Param is empty for cross-param rules.
type ParamError struct {
	Param   string
	Message string
}

func (e *ParamError) Error() string { return e.Message }

// SpecRegistry maps indicator names (case-sensitive) to their specs.
type SpecRegistry struct {
	mu    sync.RWMutex
	specs map[string]IndicatorSpec
}

// NewSpecRegistry returns an empty registry.
func NewSpecRegistry() *SpecRegistry {
	return &SpecRegistry{specs: make(map[string]IndicatorSpec)}
}

// RegisterIndicator stores spec under name. With overwrite false an existing entry is kept.
func (r *SpecRegistry) RegisterIndicator(name string, spec IndicatorSpec, overwrite bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[name]; exists && !overwrite {
		return
	}
	r.specs[name] = spec
}

// Lookup returns the spec registered under name.
func (r *SpecRegistry) Lookup(name string) (IndicatorSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[name]
	return s, ok
}

// Names returns the registered names, sorted.
func (r *SpecRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.specs))
	for k := range r.specs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RegisterBuiltinSpecs registers MA, EMA, RSI, MACD, BOLL, KD, BIAS, VOLUME and DIFF.
func RegisterBuiltinSpecs(r *SpecRegistry) {
	window := func(lo, hi int) func(models.Params) error {
		return func(p models.Params) error {
			_, err := requireInt(p, "window", lo, hi)
			return err
		}
	}
	r.RegisterIndicator("MA", IndicatorSpec{Validate: window(2, 400)}, true)
	r.RegisterIndicator("EMA", IndicatorSpec{Validate: window(2, 400)}, true)
	r.RegisterIndicator("RSI", IndicatorSpec{Validate: func(p models.Params) error {
		_, err := requireInt(p, "period", 2, 250)
		return err
	}}, true)
	r.RegisterIndicator("MACD", IndicatorSpec{
		Validate:     validateMACD,
		Fields:       []string{"macd", "signal", "hist"},
		DefaultField: "macd",
	}, true)
	r.RegisterIndicator("BOLL", IndicatorSpec{
		Validate:     validateBOLL,
		Fields:       []string{"upper", "middle", "lower"},
		DefaultField: "middle",
	}, true)
	r.RegisterIndicator("KD", IndicatorSpec{
		Validate:     validateKD,
		Fields:       []string{"k", "d"},
		DefaultField: "k",
	}, true)
	r.RegisterIndicator("BIAS", IndicatorSpec{Validate: window(2, 400)}, true)
	r.RegisterIndicator("VOLUME", IndicatorSpec{Validate: func(p models.Params) error {
		if !p.Has("window") {
			return nil
		}
		_, err := requireInt(p, "window", 2, 400)
		return err
	}}, true)
	r.RegisterIndicator("DIFF", IndicatorSpec{Validate: func(p models.Params) error {
		if !p.Has("left") || !p.Has("right") {
			return &ParamError{Message: "DIFF.params must include 'left' and 'right'"}
		}
		return nil
	}}, true)
}

func validateMACD(p models.Params) error {
	fast, err := requireInt(p, "fast", 2, 400)
	if err != nil {
		return err
	}
	slow, err := requireInt(p, "slow", 2, 400)
	if err != nil {
		return err
	}
	if _, err := requireInt(p, "signal", 2, 200); err != nil {
		return err
	}
	if fast >= slow {
		return &ParamError{Message: "fast must be less than slow"}
	}
	return nil
}

func validateBOLL(p models.Params) error {
	if _, err := requireInt(p, "window", 5, 400); err != nil {
		return err
	}
	_, err := requireNumber(p, "mult", 0.5, 5.0)
	return err
}

func validateKD(p models.Params) error {
	if _, err := requireInt(p, "k_period", 2, 200); err != nil {
		return err
	}
	if _, err := requireInt(p, "d_period", 2, 200); err != nil {
		return err
	}
	if _, ok := p["smooth"]; !ok {
		return nil
	}
	_, err := requireInt(p, "smooth", 1, 20)
	return err
}

// requireInt checks that name holds an integer within [lo,hi].
func requireInt(p models.Params, name string, lo, hi int) (int, error) {
	v := p[name]
	if v == nil || validate.Var(v, "integer") != nil {
		return 0, &ParamError{Param: name, Message: name + " must be integer"}
	}
	n, _ := models.AsInt(v)
	if validate.Var(n, fmt.Sprintf("min=%d,max=%d", lo, hi)) != nil {
		return 0, &ParamError{Param: name, Message: fmt.Sprintf("%s out of range [%d,%d]", name, lo, hi)}
	}
	return n, nil
}

// requireNumber checks that name holds a number within [lo,hi].
func requireNumber(p models.Params, name string, lo, hi float64) (float64, error) {
	v := p[name]
	if v == nil || validate.Var(v, "number") != nil {
		return 0, &ParamError{Param: name, Message: name + " must be number"}
	}
	f, _ := models.AsFloat(v)
	rule := "min=" + formatBound(lo) + ",max=" + formatBound(hi)
	if validate.Var(f, rule) != nil {
		return 0, &ParamError{Param: name, Message: fmt.Sprintf("%s out of range [%s,%s]", name, formatBound(lo), formatBound(hi))}
	}
	return f, nil
}

// formatBound renders a float bound keeping one decimal for whole numbers (5 -> "5.0").
func formatBound(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if f == float64(int64(f)) {
		s += ".0"
	}
	return s
}
