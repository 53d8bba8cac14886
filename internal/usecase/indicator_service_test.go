package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StratLab/internal/domain/models"
	"StratLab/internal/indicators"
	"StratLab/internal/service/cache"
	"StratLab/pkg/logger"
	"StratLab/pkg/metrics"
)

func TestIndicatorService_CalcCachesResult(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	store := cache.NewTTLCache(16)
	svc := NewIndicatorService(registry(), rec, logger.Nop(), WithResultCache(store, time.Minute))

	p := CalcParams{Name: "MACD", Params: models.Params{"fast": 12, "slow": 26, "signal": 9}, Frame: walkFrame(80, 3)}
	first, err := svc.Calc(ctx, p)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "macd", first.Field)
	assert.Equal(t, 25, first.Warmup)
	assert.Equal(t, 1, store.Len())

	second, err := svc.Calc(ctx, p)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Warmup, second.Warmup)
	require.Len(t, second.Values, 80)
	assert.Equal(t, first.Values.LeadingNaN(), second.Values.LeadingNaN())
	assert.InDelta(t, first.Values.Last(), second.Values.Last(), 1e-12)

	n, err := testutil.GatherAndCount(reg, "stratlab_cache_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n) // miss and hit series
}

func TestIndicatorService_DifferentFramesDoNotCollide(t *testing.T) {
	a := CalcParams{Name: "ma", Params: models.Params{"window": 3}, Frame: walkFrame(10, 1)}
	b := a
	b.Frame = walkFrame(10, 2)
	assert.NotEqual(t, calcKey(a), calcKey(b))

	c := a
	c.Params = models.Params{"window": 4}
	assert.NotEqual(t, calcKey(a), calcKey(c))
	assert.Equal(t, calcKey(a), calcKey(a))
}

func TestIndicatorService_LookupError(t *testing.T) {
	svc := NewIndicatorService(registry(), nil, nil)
	_, err := svc.Calc(context.Background(), CalcParams{Name: "UNKNOWN", Frame: walkFrame(5, 1)})

	var ce *indicators.CalcError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, indicators.CodeLookup, ce.Code)
}

func TestIndicatorService_SingleSeriesHasNoField(t *testing.T) {
	svc := NewIndicatorService(registry(), nil, nil)
	res, err := svc.Calc(context.Background(), CalcParams{Name: "rsi", Params: models.Params{"period": 14}, Frame: walkFrame(40, 1)})
	require.NoError(t, err)
	assert.Empty(t, res.Field)
	assert.Equal(t, 14, res.Values.LeadingNaN())
}
