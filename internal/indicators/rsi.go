package indicators

import (
	"math"

	"StratLab/internal/domain/models"
)

// RSI is the relative strength index with Wilder smoothing (alpha 1/period).
// The first period values, including the first row which has no delta, are undefined.
func RSI(f *models.Frame, p models.Params) (Result, error) {
	period, err := window(p, "period")
	if err != nil {
		return Result{}, err
	}
	cls, _ := f.Column(models.ColClose)
	n := len(cls)

	gain, loss := models.NaNSeries(n), models.NaNSeries(n)
	for i := 1; i < n; i++ {
		d := cls[i] - cls[i-1]
		if math.IsNaN(d) {
			continue
		}
		gain[i] = math.Max(d, 0)
		loss[i] = math.Max(-d, 0)
	}
	alpha := 1.0 / float64(period)
	avgGain, avgLoss := ewm(gain, alpha), ewm(loss, alpha)

	out := models.NaNSeries(n)
	for i := range out {
		g, l := avgGain[i], avgLoss[i]
		switch {
		case math.IsNaN(g) || math.IsNaN(l):
		case l == 0 && g == 0:
			out[i] = 50
		case l == 0:
			out[i] = 100
		default:
			out[i] = 100 - 100/(1+g/l)
		}
	}
	forceNaN(out, period)
	return SeriesResult(out), nil
}
