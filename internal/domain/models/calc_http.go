package models

import (
	"fmt"
	"sort"

	"StratLab/pkg/util"
)

// Requests for the indicator and strategy HTTP endpoints.

type BarDTO struct {
	Date   string  `json:"date" validate:"required"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume" validate:"gte=0"`
}

type CalcRequest struct {
	Name      string   `json:"name" validate:"required"`
	Params    Params   `json:"params"`
	Timeframe string   `json:"timeframe" default:"1d" validate:"required"`
	Field     string   `json:"field"`
	Bars      []BarDTO `json:"bars" validate:"required,min=1,max=20000,dive"`
	// Tail limits the returned values to the last n rows; 0 returns all.
	Tail int `json:"tail" validate:"gte=0"`
}

type EvaluateRequest struct {
	Strategy map[string]any `json:"strategy" validate:"required"`
	Bars     []BarDTO       `json:"bars" validate:"required,min=1,max=20000,dive"`
	Tail     int            `json:"tail" validate:"gte=0"`
}

// BarsFrame parses bar dates and builds a full OHLCV frame. Bars are sorted
// by date; duplicate dates are rejected.
func BarsFrame(dtos []BarDTO) (*Frame, error) {
	bars := make([]Bar, len(dtos))
	for i, d := range dtos {
		t, ok := util.ParseTime(d.Date)
		if !ok {
			return nil, fmt.Errorf("bars[%d].date: invalid date %q", i, d.Date)
		}
		bars[i] = Bar{Date: t, Open: d.Open, High: d.High, Low: d.Low, Close: d.Close, Volume: d.Volume}
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Equal(bars[i-1].Date) {
			return nil, fmt.Errorf("bars: duplicate date %s", bars[i].Date.Format(util.DateLayout))
		}
	}
	return NewFrame(bars), nil
}
