package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StratLab/internal/domain/models"
)

var nan = math.NaN()

func TestMA_Correctness_Window3(t *testing.T) {
	// (100+102+104)/3 = 102, (102+104+103)/3 = 103, (104+103+105)/3 = 104
	res, err := MA(closeFrame(100, 102, 104, 103, 105), models.Params{"window": 3})
	require.NoError(t, err)
	assertSeries(t, "MA(3)", res.Series(), nan, nan, 102, 103, 104)
}

func TestEMA_Correctness_Window3(t *testing.T) {
	// alpha = 2/(3+1) = 0.5, seeded with the first close:
	// 100, 101, 102.5, 102.75, 103.875 -> first two forced undefined
	res, err := EMA(closeFrame(100, 102, 104, 103, 105), models.Params{"window": 3})
	require.NoError(t, err)
	assertSeries(t, "EMA(3)", res.Series(), nan, nan, 102.5, 102.75, 103.875)
}

func TestRSI_Correctness_Period2(t *testing.T) {
	// gains 1,1,0 losses 0,0,1 with alpha 0.5:
	// avg gain 1,1,0.5 avg loss 0,0,0.5 -> 100, 100, 50
	res, err := RSI(closeFrame(1, 2, 3, 2), models.Params{"period": 2})
	require.NoError(t, err)
	assertSeries(t, "RSI(2)", res.Series(), nan, nan, 100, 50)
}

func TestRSI_FlatSeriesIsNeutral(t *testing.T) {
	res, err := RSI(closeFrame(5, 5, 5, 5, 5, 5), models.Params{"period": 3})
	require.NoError(t, err)
	assertSeries(t, "RSI(3)", res.Series(), nan, nan, nan, 50, 50, 50)
}

func TestRSI_Bounds(t *testing.T) {
	f := randomFrame(250, 7)
	for _, p := range []int{2, 5, 14, 30} {
		res, err := RSI(f, models.Params{"period": p})
		require.NoError(t, err)
		s := res.Series()
		assert.Equal(t, p, s.LeadingNaN(), "period %d", p)
		for i, v := range s[p:] {
			assert.False(t, math.IsNaN(v), "period %d idx %d", p, i+p)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
}

func TestBOLL_PopulationStd(t *testing.T) {
	// window 5 over 1..5: mean 3, variance (4+1+0+1+4)/5 = 2
	res, err := BOLL(closeFrame(1, 2, 3, 4, 5), models.Params{"window": 5, "mult": 2.0})
	require.NoError(t, err)
	require.True(t, res.Multi())
	assert.Equal(t, []string{FieldUpper, FieldMiddle, FieldLower}, res.ColumnNames())

	mid, _ := res.Column(FieldMiddle)
	up, _ := res.Column(FieldUpper)
	lo, _ := res.Column(FieldLower)
	assertSeries(t, "middle", mid, nan, nan, nan, nan, 3)
	assertSeries(t, "upper", up, nan, nan, nan, nan, 3+2*math.Sqrt2)
	assertSeries(t, "lower", lo, nan, nan, nan, nan, 3-2*math.Sqrt2)
}

func TestBIAS_Correctness(t *testing.T) {
	// ma(3) at idx 2 = 11, (13-11)/11*100
	res, err := BIAS(closeFrame(10, 10, 13), models.Params{"window": 3})
	require.NoError(t, err)
	assertSeries(t, "BIAS(3)", res.Series(), nan, nan, 200.0/11.0)
}

func TestVolume_RawAndWindowed(t *testing.T) {
	f := closeFrame(1, 1, 1, 1)
	raw, err := Volume(f, models.Params{})
	require.NoError(t, err)
	assertSeries(t, "raw", raw.Series(), 100, 200, 300, 400)

	avg, err := Volume(f, models.Params{"window": 2})
	require.NoError(t, err)
	assertSeries(t, "ma(2)", avg.Series(), nan, 150, 250, 350)
}

func TestVolume_RawIsACopy(t *testing.T) {
	f := closeFrame(1, 1)
	raw, err := Volume(f, models.Params{})
	require.NoError(t, err)
	raw.Series()[0] = -1
	vol, _ := f.Column(models.ColVolume)
	assert.Equal(t, 100.0, vol[0])
}

func TestDiff(t *testing.T) {
	f := models.NewFrame([]models.Bar{{Open: 1, High: 5, Low: 0, Close: 3, Volume: 9}})
	res, err := Diff(f, models.Params{"left": "close", "right": "open"})
	require.NoError(t, err)
	assertSeries(t, "close-open", res.Series(), 2)

	_, err = Diff(f, models.Params{"left": "close", "right": "bogus"})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestCompute_WindowLongerThanFrame(t *testing.T) {
	res, err := MA(closeFrame(1, 2), models.Params{"window": 5})
	require.NoError(t, err)
	assertSeries(t, "MA(5)", res.Series(), nan, nan)
}

func TestCompute_MissingParam(t *testing.T) {
	f := closeFrame(1, 2, 3)
	for name, fn := range map[string]Func{"ma": MA, "ema": EMA, "rsi": RSI, "bias": BIAS, "boll": BOLL, "macd": MACD} {
		_, err := fn(f, models.Params{})
		assert.ErrorIs(t, err, ErrInvalidParams, name)
	}
	_, err := MA(f, models.Params{"window": 0})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestRollingMean_InteriorNaN(t *testing.T) {
	got := rollingMean(models.Series{1, 2, nan, 4, 5, 6}, 2)
	assertSeries(t, "rolling", got, nan, 1.5, nan, nan, 4.5, 5.5)
}

func TestEWM_SkipsLeadingNaN(t *testing.T) {
	got := ewm(models.Series{nan, nan, 4, 8}, 0.5)
	assertSeries(t, "ewm", got, nan, nan, 4, 6)
}
