package indicators

import (
	"fmt"

	"StratLab/internal/domain/models"
)

// MA is the simple moving average of close.
func MA(f *models.Frame, p models.Params) (Result, error) {
	w, err := window(p, "window")
	if err != nil {
		return Result{}, err
	}
	cls, _ := f.Column(models.ColClose)
	return SeriesResult(rollingMean(cls, w)), nil
}

// window reads a positive integer lookback from p.
func window(p models.Params, key string) (int, error) {
	w, err := p.Int(key)
	if err != nil {
		return 0, invalidParam(err)
	}
	if w < 1 {
		return 0, invalidParam(fmt.Errorf("param %q must be positive, got %d", key, w))
	}
	return w, nil
}
