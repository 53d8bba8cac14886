package indicators

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StratLab/internal/domain/models"
)

// randomFrame builds a deterministic random-walk OHLCV frame.
func randomFrame(n int, seed int64) *models.Frame {
	rng := rand.New(rand.NewSource(seed))
	bars := make([]models.Bar, n)
	price := 100.0
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price += rng.NormFloat64()
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price + rng.NormFloat64()*0.5,
			High:   price + rng.Float64(),
			Low:    price - rng.Float64(),
			Close:  price,
			Volume: float64(1000 + rng.Intn(4000)),
		}
	}
	return models.NewFrame(bars)
}

// closeFrame builds a frame whose OHLC columns all equal closes.
func closeFrame(closes ...float64) *models.Frame {
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{Open: c, High: c, Low: c, Close: c, Volume: 100 * float64(i+1)}
	}
	return models.NewFrame(bars)
}

func builtins() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

func assertSeries(t *testing.T, label string, got models.Series, want ...float64) {
	t.Helper()
	if !assert.Len(t, got, len(want), label) {
		return
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			assert.True(t, math.IsNaN(got[i]), "%s[%d]: want NaN, got %.6f", label, i, got[i])
			continue
		}
		assert.InDelta(t, want[i], got[i], 1e-6, "%s[%d]", label, i)
	}
}
