package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesTypedFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.InfoLevel)
	l.Info("indicator.calc done",
		String("indicator", "ma"),
		Int("rows", 100),
		Float64("last", 1.5),
		Bool("cached", false),
		Strings("fields", []string{"a", "b"}),
		Error(errors.New("boom")),
	)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "indicator.calc done", out["message"])
	assert.Equal(t, "ma", out["indicator"])
	assert.Equal(t, float64(100), out["rows"])
	assert.Equal(t, 1.5, out["last"])
	assert.Equal(t, false, out["cached"])
	assert.Equal(t, "a, b", out["fields"])
	assert.Equal(t, "boom", out["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.WarnLevel)
	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())
	l.Warn("shown", Duration("took", time.Second))
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.InfoLevel).With(String("component", "strategy"))
	l.Info("strategy.validate ok")
	assert.Contains(t, buf.String(), `"component":"strategy"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("nothing", Int("n", 1)) })
}
