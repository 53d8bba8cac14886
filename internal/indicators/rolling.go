package indicators

import (
	"math"

	"StratLab/internal/domain/models"
)

// rollingMean is the mean over a trailing window, requiring w defined values.
func rollingMean(s models.Series, w int) models.Series {
	out := models.NaNSeries(len(s))
	var sum float64
	nan := 0
	for i, v := range s {
		if math.IsNaN(v) {
			nan++
		} else {
			sum += v
		}
		if i >= w {
			old := s[i-w]
			if math.IsNaN(old) {
				nan--
			} else {
				sum -= old
			}
		}
		if i >= w-1 && nan == 0 {
			out[i] = sum / float64(w)
		}
	}
	return out
}

// rollingStd is the population standard deviation (ddof 0) over a trailing window.
func rollingStd(s models.Series, w int) models.Series {
	mean := rollingMean(s, w)
	out := models.NaNSeries(len(s))
	for i := w - 1; i < len(s); i++ {
		m := mean[i]
		if math.IsNaN(m) {
			continue
		}
		var ss float64
		for _, v := range s[i-w+1 : i+1] {
			d := v - m
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(w))
	}
	return out
}

// ewm is an exponentially weighted mean without bias adjustment:
// y = (1-alpha)*y_prev + alpha*x, seeded with the first defined input.
// Leading NaN inputs stay NaN; interior NaN inputs carry the previous value.
func ewm(s models.Series, alpha float64) models.Series {
	out := models.NaNSeries(len(s))
	started := false
	var prev float64
	for i, v := range s {
		if math.IsNaN(v) {
			if started {
				out[i] = prev
			}
			continue
		}
		if !started {
			prev = v
			started = true
		} else {
			prev = (1-alpha)*prev + alpha*v
		}
		out[i] = prev
	}
	return out
}

// spanEMA is ewm with alpha derived from span n, the first n-1 entries forced NaN.
func spanEMA(s models.Series, n int) models.Series {
	out := ewm(s, 2.0/float64(n+1))
	forceNaN(out, n-1)
	return out
}

func forceNaN(s models.Series, n int) {
	for i := 0; i < n && i < len(s); i++ {
		s[i] = math.NaN()
	}
}

func sub(a, b models.Series) models.Series {
	out := make(models.Series, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
