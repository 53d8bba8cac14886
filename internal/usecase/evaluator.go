package usecase

import (
	"fmt"
	"math"
	"strings"

	"StratLab/internal/domain/models"
	"StratLab/internal/indicators"
	"StratLab/internal/strategy"
)

// Signals is the per-bar outcome of a strategy over a frame.
type Signals struct {
	Values []bool `json:"signals"`
	Last   bool   `json:"last"`
	// Warmup is the longest undefined prefix among the strategy's operands.
	Warmup int `json:"warmup"`
}

// Evaluator turns validated strategies into boolean signal series.
type Evaluator struct {
	registry *indicators.Registry
}

func NewEvaluator(registry *indicators.Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate combines every condition of st over f with the strategy logic.
func (e *Evaluator) Evaluate(st *strategy.Strategy, f *models.Frame) (*Signals, error) {
	if len(st.Conditions) == 0 {
		return nil, fmt.Errorf("strategy %q has no conditions", st.Name)
	}
	n := f.Len()
	out := &Signals{Values: make([]bool, n)}
	for i := range out.Values {
		out.Values[i] = st.Logic != strategy.LogicOR
	}

	for ci, cond := range st.Conditions {
		left, err := e.Resolve(cond.Left, f, st.Timeframe)
		if err != nil {
			return nil, fmt.Errorf("condition %d left: %w", ci, err)
		}
		right, err := e.Resolve(cond.Right, f, st.Timeframe)
		if err != nil {
			return nil, fmt.Errorf("condition %d right: %w", ci, err)
		}
		hits := Compare(cond.Op, left, right)
		for i := range out.Values {
			hit := i < len(hits) && hits[i]
			if st.Logic == strategy.LogicOR {
				out.Values[i] = out.Values[i] || hit
			} else {
				out.Values[i] = out.Values[i] && hit
			}
		}

		w := max(e.warmup(cond.Left), e.warmup(cond.Right))
		if cond.Op.IsCross() {
			w++
		}
		out.Warmup = max(out.Warmup, w)
	}
	if n > 0 {
		out.Last = out.Values[n-1]
	}
	return out, nil
}

// Resolve materialises an operand as a series aligned with f.
func (e *Evaluator) Resolve(op strategy.Operand, f *models.Frame, timeframe string) (models.Series, error) {
	switch o := op.(type) {
	case strategy.NumberOperand:
		s := make(models.Series, f.Len())
		for i := range s {
			s[i] = o.Value
		}
		return s, nil
	case strategy.SeriesRefOperand:
		col, ok := f.Column(o.Series)
		if !ok {
			return nil, fmt.Errorf("frame has no %q column", o.Series)
		}
		return col, nil
	case strategy.IndicatorRefOperand:
		src, err := withSource(f, o.Source)
		if err != nil {
			return nil, err
		}
		return e.registry.Calc(o.Indicator, src, o.Params, timeframe, o.Field)
	}
	return nil, fmt.Errorf("unsupported operand %T", op)
}

func (e *Evaluator) warmup(op strategy.Operand) int {
	ref, ok := op.(strategy.IndicatorRefOperand)
	if !ok {
		return 0
	}
	return e.registry.Warmup(strings.ToLower(ref.Indicator), ref.Params)
}

// withSource returns f with close replaced by the requested price source.
func withSource(f *models.Frame, source string) (*models.Frame, error) {
	switch source {
	case "", models.ColClose:
		return f, nil
	case models.ColOpen, models.ColHigh, models.ColLow:
		col, ok := f.Column(source)
		if !ok {
			return nil, fmt.Errorf("frame has no %q column", source)
		}
		return f.WithColumn(models.ColClose, col), nil
	case "typical", "hlc3":
		h, hok := f.Column(models.ColHigh)
		l, lok := f.Column(models.ColLow)
		c, cok := f.Column(models.ColClose)
		if !hok || !lok || !cok {
			return nil, fmt.Errorf("source %s needs high, low and close", source)
		}
		tp := make(models.Series, len(c))
		for i := range c {
			tp[i] = (h[i] + l[i] + c[i]) / 3
		}
		return f.WithColumn(models.ColClose, tp), nil
	}
	return nil, fmt.Errorf("unknown source %q", source)
}

// Compare applies op elementwise. Undefined values on either side never match.
// Cross operators compare each bar with the previous one; the first bar never crosses.
func Compare(op strategy.Op, left, right models.Series) []bool {
	n := min(len(left), len(right))
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		l, r := left[i], right[i]
		if math.IsNaN(l) || math.IsNaN(r) {
			continue
		}
		switch op {
		case strategy.OpGT:
			out[i] = l > r
		case strategy.OpLT:
			out[i] = l < r
		case strategy.OpGTE:
			out[i] = l >= r
		case strategy.OpLTE:
			out[i] = l <= r
		case strategy.OpEQ:
			out[i] = l == r
		case strategy.OpNE:
			out[i] = l != r
		case strategy.OpCrossUp, strategy.OpCrossDown:
			if i == 0 || math.IsNaN(left[i-1]) || math.IsNaN(right[i-1]) {
				continue
			}
			pl, pr := left[i-1], right[i-1]
			if op == strategy.OpCrossUp {
				out[i] = pl <= pr && l > r
			} else {
				out[i] = pl >= pr && l < r
			}
		}
	}
	return out
}
