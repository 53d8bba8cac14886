package indicators

import (
	"fmt"

	"StratLab/internal/domain/models"
)

// Diff subtracts one OHLCV column from another.
func Diff(f *models.Frame, p models.Params) (Result, error) {
	left, right := p.String("left"), p.String("right")
	if !isBaseColumn(left) || !isBaseColumn(right) {
		return Result{}, invalidParam(fmt.Errorf("DIFF.left/right must be one of open/high/low/close/volume"))
	}
	l, _ := f.Column(left)
	r, _ := f.Column(right)
	return SeriesResult(sub(l, r)), nil
}

func isBaseColumn(name string) bool {
	for _, c := range models.OHLCV {
		if c == name {
			return true
		}
	}
	return false
}
