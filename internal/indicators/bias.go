package indicators

import "StratLab/internal/domain/models"

// BIAS is the percentage distance of close from its moving average.
func BIAS(f *models.Frame, p models.Params) (Result, error) {
	w, err := window(p, "window")
	if err != nil {
		return Result{}, err
	}
	cls, _ := f.Column(models.ColClose)
	ma := rollingMean(cls, w)
	out := make(models.Series, len(cls))
	for i := range cls {
		out[i] = (cls[i] - ma[i]) / ma[i] * 100
	}
	return SeriesResult(out), nil
}
