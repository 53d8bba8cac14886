package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	require.NoError(t, err)
	assert.Equal(t, "test", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 15*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, []string{"1d"}, c.Indicators.Timeframes)
	assert.Equal(t, "/metrics", c.Metrics.Path)
	assert.True(t, c.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.False(t, c.Cache.Redis.Enabled)
	assert.Equal(t, 20.0, c.RateLimit.Capacity)
}

func TestParse_Overrides(t *testing.T) {
	c, err := Parse([]byte(`
server:
  port: 9090
schema:
  require_kind: true
  indicator_names: [MA, RSI]
cache:
  ttl: 30s
`))
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Server.Port)
	assert.True(t, c.Schema.RequireKind)
	assert.Equal(t, []string{"MA", "RSI"}, c.Schema.IndicatorNames)
	assert.Equal(t, 30*time.Second, c.Cache.TTL)
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{
		"log:\n  level: loud\n",
		"server:\n  port: 0\n",
		"indicators:\n  timeframes: []\n",
		"metrics:\n  path: metrics\n",
		"cache:\n  redis:\n    enabled: true\n    addr: \"\"\n",
	} {
		_, err := Parse([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestApplyEnv(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	env := map[string]string{
		"STRATLAB_ENV":         "production",
		"STRATLAB_PORT":        "7000",
		"LOG_LEVEL":            "DEBUG",
		"REDIS_ADDR":           "redis:6379",
		"INDICATOR_TIMEFRAMES": "1d,1w",
	}
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 7000, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, []string{"1d", "1w"}, c.Indicators.Timeframes)
	assert.NoError(t, c.Validate())

	assert.Error(t, c.applyEnv(func(k string) string {
		if k == "STRATLAB_PORT" {
			return "http"
		}
		return ""
	}))
}

func TestLoad_RepositoryConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "development", c.Environment)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: staging\n"), 0o600))
	t.Setenv("STRATLAB_PORT", "8181")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, 8181, c.Server.Port)
	assert.Equal(t, "staging", c.Environment)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STRATLAB_DOTENV_NEW=from-file\nSTRATLAB_DOTENV_KEEP=from-file\n"), 0o600))
	t.Setenv("STRATLAB_DOTENV_KEEP", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("STRATLAB_DOTENV_NEW") })

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("STRATLAB_DOTENV_NEW"))
	assert.Equal(t, "from-env", os.Getenv("STRATLAB_DOTENV_KEEP"))
}
