package indicators

import "StratLab/internal/domain/models"

// MACD columns.
const (
	FieldMACD   = "macd"
	FieldSignal = "signal"
	FieldHist   = "hist"
)

// MACD returns the macd line, its signal EMA and the histogram.
// Each sub-EMA carries its own warm-up before the lines are combined.
func MACD(f *models.Frame, p models.Params) (Result, error) {
	fast, err := window(p, "fast")
	if err != nil {
		return Result{}, err
	}
	slow, err := window(p, "slow")
	if err != nil {
		return Result{}, err
	}
	signal, err := window(p, "signal")
	if err != nil {
		return Result{}, err
	}
	cls, _ := f.Column(models.ColClose)

	line := sub(spanEMA(cls, fast), spanEMA(cls, slow))
	sig := spanEMA(line, signal)
	hist := sub(line, sig)

	return TableResult(
		[]string{FieldMACD, FieldSignal, FieldHist},
		map[string]models.Series{FieldMACD: line, FieldSignal: sig, FieldHist: hist},
	), nil
}
