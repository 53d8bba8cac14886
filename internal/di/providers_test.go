package di

import (
	"testing"

	"StratLab/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("log:\n  level: error\n"))
	require.NoError(t, err)
	return cfg
}

func TestInitializeApp(t *testing.T) {
	app, cleanup, err := InitializeApp(defaultConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app)
	cleanup()
}

func TestProvideResultCache(t *testing.T) {
	cfg := defaultConfig(t)
	l, err := ProvideLogger(cfg)
	require.NoError(t, err)

	c, cleanup, err := ProvideResultCache(cfg, l)
	require.NoError(t, err)
	assert.NotNil(t, c)
	cleanup()

	cfg.Cache.Enabled = false
	c, cleanup, err = ProvideResultCache(cfg, l)
	require.NoError(t, err)
	assert.Nil(t, c)
	cleanup()
}

func TestProvideSchema_ConfigOverrides(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Schema.RequireKind = true
	schema := ProvideSchema(cfg, ProvideSpecRegistry())

	_, err := schema.NewOperand(map[string]any{"value": 1.0})
	assert.Error(t, err)
	_, err = schema.NewOperand(map[string]any{"kind": "number", "value": 1.0})
	assert.NoError(t, err)
}

func TestProvideIndicatorRegistry_Timeframes(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Indicators.Timeframes = []string{"1d", "1w"}
	d, ok := ProvideIndicatorRegistry(cfg).Lookup("ma")
	require.True(t, ok)
	assert.True(t, d.SupportsTimeframe("1W"))
}
