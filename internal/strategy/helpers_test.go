package strategy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSchema(opts ...Option) *Schema {
	r := NewSpecRegistry()
	RegisterBuiltinSpecs(r)
	return NewSchema(r, opts...)
}

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func report(t *testing.T, err error) Report {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	return FormatValidationError(ve)
}

func paths(r Report) []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Path
	}
	return out
}

func strategyWith(conditions string) string {
	return `{"name":"golden cross","version":"1.0.0","type":"screen","timeframe":"1d","logic":"AND","conditions":` + conditions + `}`
}
