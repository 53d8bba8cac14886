package strategy

import (
	"StratLab/internal/domain/models"
)

// Decoder messages for shape mismatches.
const (
	msgNotString = "str type expected"
	msgNotList   = "value is not a valid list"
	msgNotDict   = "value is not a valid dict"
	msgNotFloat  = "value is not a valid float"
)

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case models.Params:
		return m, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		if l == nil {
			l = []any{}
		}
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// field reads key from payload; present is false for absent or null values.
func field(payload map[string]any, key string) (v any, present bool) {
	v, ok := payload[key]
	return v, ok && v != nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
