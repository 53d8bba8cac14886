package indicators

import "StratLab/internal/domain/models"

// Bollinger band columns.
const (
	FieldUpper  = "upper"
	FieldMiddle = "middle"
	FieldLower  = "lower"
)

// BOLL returns Bollinger bands around the rolling mean of close, using the
// population standard deviation.
func BOLL(f *models.Frame, p models.Params) (Result, error) {
	w, err := window(p, "window")
	if err != nil {
		return Result{}, err
	}
	mult, err := p.Float("mult")
	if err != nil {
		return Result{}, invalidParam(err)
	}
	cls, _ := f.Column(models.ColClose)

	mid := rollingMean(cls, w)
	std := rollingStd(cls, w)
	upper := make(models.Series, len(mid))
	lower := make(models.Series, len(mid))
	for i := range mid {
		upper[i] = mid[i] + mult*std[i]
		lower[i] = mid[i] - mult*std[i]
	}
	return TableResult(
		[]string{FieldUpper, FieldMiddle, FieldLower},
		map[string]models.Series{FieldUpper: upper, FieldMiddle: mid, FieldLower: lower},
	), nil
}
