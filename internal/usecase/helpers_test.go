package usecase

import (
	"math/rand"
	"time"

	"StratLab/internal/domain/models"
	"StratLab/internal/indicators"
	"StratLab/internal/strategy"
)

func walkFrame(n int, seed int64) *models.Frame {
	rng := rand.New(rand.NewSource(seed))
	bars := make([]models.Bar, n)
	price := 50.0
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price += rng.NormFloat64()
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price - 0.2,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}
	return models.NewFrame(bars)
}

func closes(values ...float64) *models.Frame {
	bars := make([]models.Bar, len(values))
	for i, v := range values {
		bars[i] = models.Bar{Open: v, High: v + 1, Low: v - 1, Close: v, Volume: 1}
	}
	return models.NewFrame(bars)
}

func registry() *indicators.Registry {
	r := indicators.NewRegistry()
	indicators.RegisterBuiltins(r)
	return r
}

func schema() *strategy.Schema {
	specs := strategy.NewSpecRegistry()
	strategy.RegisterBuiltinSpecs(specs)
	return strategy.NewSchema(specs)
}

func goldenPayload() map[string]any {
	return map[string]any{
		"name":      "close above ma",
		"version":   "1.0.0",
		"type":      "screen",
		"timeframe": "1d",
		"logic":     "AND",
		"conditions": []any{
			map[string]any{
				"left":  map[string]any{"series": "close"},
				"op":    ">",
				"right": map[string]any{"indicator": "MA", "params": map[string]any{"window": 20}},
			},
		},
	}
}
