package indicators

import "StratLab/internal/domain/models"

// EMA is the exponential moving average of close with span window.
// The first window-1 values are undefined.
func EMA(f *models.Frame, p models.Params) (Result, error) {
	w, err := window(p, "window")
	if err != nil {
		return Result{}, err
	}
	cls, _ := f.Column(models.ColClose)
	return SeriesResult(spanEMA(cls, w)), nil
}
