package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StratLab/internal/domain/models"
)

// Every built-in's declared warm-up must match the undefined prefix it produces.
func TestWarmup_MatchesObservedPrefix(t *testing.T) {
	r := builtins()
	f := randomFrame(150, 11)

	cases := []struct {
		name   string
		params models.Params
		fields []string
	}{
		{"ma", models.Params{"window": 2}, nil},
		{"ma", models.Params{"window": 20}, nil},
		{"ema", models.Params{"window": 9}, nil},
		{"rsi", models.Params{"period": 14}, nil},
		{"rsi", models.Params{"period": 2}, nil},
		{"macd", models.Params{"fast": 12, "slow": 26, "signal": 9}, []string{"signal", "hist"}},
		{"macd", models.Params{"fast": 3, "slow": 5, "signal": 9}, []string{"signal", "hist"}},
		{"boll", models.Params{"window": 20, "mult": 2.0}, []string{"upper", "middle", "lower"}},
		{"bias", models.Params{"window": 10}, nil},
		{"volume", models.Params{}, nil},
		{"volume", models.Params{"window": 10}, nil},
		{"diff", models.Params{"left": "high", "right": "low"}, nil},
	}

	for _, tc := range cases {
		want := r.Warmup(tc.name, tc.params)
		fields := tc.fields
		if fields == nil {
			fields = []string{""}
		}
		for _, field := range fields {
			s, err := r.Calc(tc.name, f, tc.params, "1d", field)
			require.NoError(t, err, "%s %v", tc.name, tc.params)
			assert.Equal(t, want, s.LeadingNaN(), "%s %v field=%q", tc.name, tc.params, field)
		}
	}
}

func TestWarmup_MACDLineLeadsSignal(t *testing.T) {
	r := builtins()
	p := models.Params{"fast": 12, "slow": 26, "signal": 9}
	line, err := r.Calc("macd", randomFrame(100, 4), p, "1d", "macd")
	require.NoError(t, err)
	assert.Equal(t, 25, line.LeadingNaN())
	assert.Equal(t, 25, r.Warmup("macd", p))
}

func TestWarmup_Unregistered(t *testing.T) {
	assert.Zero(t, builtins().Warmup("nope", nil))
}
