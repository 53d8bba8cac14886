package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPath(t *testing.T) {
	assert.Equal(t, "conditions[0].left.params.window", RenderPath([]any{"conditions", 0, "left", "params", "window"}))
	assert.Equal(t, "matrix[1][2]", RenderPath([]any{"matrix", 1, 2}))
	assert.Equal(t, "[0].op", RenderPath([]any{0, "op"}))
	assert.Equal(t, "", RenderPath(nil))
}

func TestFormat_Dedup(t *testing.T) {
	v := Violation{Loc: []any{"conditions", 0, "op"}, Type: TypeEnum, Msg: permitted(ops)}
	r := FormatValidationError(&ValidationError{Violations: []Violation{v, v, v}})
	assert.Len(t, r.Errors, 1)
	assert.Equal(t, CodeInvalidEnum, r.Errors[0].Code)
}

func TestFormat_NeverRepeatsEntries(t *testing.T) {
	_, err := newSchema().NewStrategy(decode(t, strategyWith(`[
		{"left":"x","op":"?","right":"x"},
		{"left":"x","op":"?","right":"x"}
	]`)))
	r := report(t, err)
	seen := map[FieldError]bool{}
	for _, e := range r.Errors {
		assert.False(t, seen[e], "duplicate %v", e)
		seen[e] = true
	}
	assert.Len(t, r.Errors, 6)
}

func TestFormat_CodeMapping(t *testing.T) {
	cases := []struct {
		typ, msg, code string
	}{
		{TypeEnum, "unexpected value; permitted: 'AND', 'OR'", CodeInvalidEnum},
		{TypeValueError, "window out of range [2,400]", CodeOutOfRange},
		{TypeValueError, "fast must be less than slow", CodeInvalidRelation},
		{TypeValueError, "at least one condition is required", CodeMissingRequired},
		{TypeValueError, "RSI does not support 'field'", CodeInvalidField},
		{TypeValueError, "field must be one of ['k', 'd'] for KD", CodeInvalidField},
		{TypeValueError, "unknown indicator: ATR", CodeInvalidValue},
		{TypeValueError, "cross_* operator requires two series operands", CodeInvalidOperand},
		{TypeMissing, "field required", CodeMissingRequired},
		{TypeTypeError, "str type expected", CodeInvalidValue},
		{TypeValueError, "window must be integer", CodeInvalidValue},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, mapCode(tc.typ, tc.msg), tc.msg)
	}
}

func TestFormat_SuppressionScopedToOperand(t *testing.T) {
	r := FormatValidationError(&ValidationError{Violations: []Violation{
		{Loc: []any{"conditions", 0, "left", "value"}, Type: TypeMissing, Msg: msgFieldRequired},
		{Loc: []any{"conditions", 0, "left", "params", "window"}, Type: TypeValueError, Msg: "window out of range [2,400]"},
		{Loc: []any{"conditions", 0, "right", "value"}, Type: TypeMissing, Msg: msgFieldRequired},
		{Loc: []any{"conditions", 1, "left", "series"}, Type: TypeMissing, Msg: msgFieldRequired},
	}})
	assert.Equal(t, []string{
		"conditions[0].left.params.window",
		"conditions[0].right.value",
		"conditions[1].left.series",
	}, paths(r))
}

func TestFormat_NilError(t *testing.T) {
	r := FormatValidationError(nil)
	assert.Equal(t, 422, r.Status)
	assert.Empty(t, r.Errors)
}
