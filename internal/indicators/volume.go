package indicators

import "StratLab/internal/domain/models"

// Volume passes raw volume through, or averages it when a window is given.
func Volume(f *models.Frame, p models.Params) (Result, error) {
	vol, _ := f.Column(models.ColVolume)
	if !p.Has("window") {
		out := make(models.Series, len(vol))
		copy(out, vol)
		return SeriesResult(out), nil
	}
	w, err := window(p, "window")
	if err != nil {
		return Result{}, err
	}
	return SeriesResult(rollingMean(vol, w)), nil
}
