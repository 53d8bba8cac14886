package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Params carries indicator parameters as decoded from a request payload.
type Params map[string]any

// Has reports whether key is present with a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// Int returns key as an integer.
func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("param %q is required", key)
	}
	n, ok := AsInt(v)
	if !ok {
		return 0, fmt.Errorf("param %q must be integer, got %v", key, v)
	}
	return n, nil
}

// Float returns key as a float.
func (p Params) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("param %q is required", key)
	}
	f, ok := AsFloat(v)
	if !ok {
		return 0, fmt.Errorf("param %q must be number, got %v", key, v)
	}
	return f, nil
}

// String returns key as a string; absent keys yield "".
func (p Params) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// AsInt converts v to int when it holds an integral number. Bools, strings and
// fractional values are rejected; json.Number must be an integer literal.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// AsFloat converts any numeric value (including json.Number) to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		return 0, false
	}
	if i, ok := AsInt(v); ok {
		return float64(i), true
	}
	return 0, false
}
