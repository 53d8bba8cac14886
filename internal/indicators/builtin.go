package indicators

import "StratLab/internal/domain/models"

// RegisterBuiltins registers MA, EMA, RSI, MACD, BOLL, BIAS, VOLUME and DIFF.
// timeframes overrides the supported set; it defaults to {"1d"}.
func RegisterBuiltins(r *Registry, timeframes ...string) {
	if len(timeframes) == 0 {
		timeframes = []string{DefaultTimeframe}
	}
	tfs := func() []string { return append([]string(nil), timeframes...) }

	r.Register("ma", MA, Descriptor{Timeframes: tfs(), Warmup: windowWarmup("window", 5)})
	r.Register("ema", EMA, Descriptor{Timeframes: tfs(), Warmup: windowWarmup("window", 5)})
	r.Register("rsi", RSI, Descriptor{Timeframes: tfs(), Warmup: func(p models.Params) int {
		return intOr(p, "period", 14)
	}})
	r.Register("macd", MACD, Descriptor{
		Timeframes:   tfs(),
		Fields:       []string{FieldMACD, FieldSignal, FieldHist},
		DefaultField: FieldMACD,
		Warmup:       macdWarmup,
	})
	r.Register("boll", BOLL, Descriptor{
		Timeframes:   tfs(),
		Fields:       []string{FieldUpper, FieldMiddle, FieldLower},
		DefaultField: FieldMiddle,
		Warmup:       windowWarmup("window", 20),
	})
	r.Register("bias", BIAS, Descriptor{Timeframes: tfs(), Warmup: windowWarmup("window", 20)})
	r.Register("volume", Volume, Descriptor{
		Timeframes: tfs(),
		Warmup: func(p models.Params) int {
			if !p.Has("window") {
				return 0
			}
			return lookback(intOr(p, "window", 0))
		},
	})
	r.Register("diff", Diff, Descriptor{Timeframes: tfs(), Warmup: func(models.Params) int { return 0 }})
}

func windowWarmup(key string, def int) func(models.Params) int {
	return func(p models.Params) int { return lookback(intOr(p, key, def)) }
}

func macdWarmup(p models.Params) int {
	fast, slow, signal := intOr(p, "fast", 12), intOr(p, "slow", 26), intOr(p, "signal", 9)
	line := lookback(max(fast, slow))
	return max(line, lookback(signal))
}

// lookback is the undefined prefix of an n-period window.
func lookback(n int) int {
	if n < 1 {
		return 0
	}
	return n - 1
}

func intOr(p models.Params, key string, def int) int {
	if v, err := p.Int(key); err == nil {
		return v
	}
	return def
}
