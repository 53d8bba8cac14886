package strategy

import (
	"net/http"
	"strings"
)

// Error codes emitted by the formatter.
const (
	CodeMissingRequired = "missing_required"
	CodeInvalidEnum     = "invalid_enum"
	CodeOutOfRange      = "out_of_range"
	CodeInvalidRelation = "invalid_relation"
	CodeInvalidField    = "invalid_field"
	CodeInvalidValue    = "invalid_value"
	CodeInvalidOperand  = "invalid_operand"
)

// FieldError is one entry of a formatted report.
type FieldError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report is the wire shape of a schema failure.
type Report struct {
	Status int          `json:"status"`
	Errors []FieldError `json:"errors"`
}

// Codes returns the error codes in report order.
func (r Report) Codes() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Code
	}
	return out
}

// FormatValidationError renders err as a 422 report. Companion "field required"
// errors at .value/.series produced by operand probing are dropped when the same
// operand has a params or field error; duplicates are collapsed in first-seen order.
func FormatValidationError(err *ValidationError) Report {
	rep := Report{Status: http.StatusUnprocessableEntity, Errors: []FieldError{}}
	if err == nil {
		return rep
	}

	raw := make([]FieldError, 0, len(err.Violations))
	for _, v := range err.Violations {
		raw = append(raw, FieldError{Path: v.Path(), Code: mapCode(v.Type, v.Msg), Message: v.Msg})
	}

	substantive := make(map[string]bool)
	for _, e := range raw {
		prefix, rest, ok := operandPrefix(e.Path)
		if ok && (hasSegment(rest, "params") || hasSegment(rest, "field")) {
			substantive[prefix] = true
		}
	}

	seen := make(map[FieldError]bool, len(raw))
	for _, e := range raw {
		if prefix, rest, ok := operandPrefix(e.Path); ok && substantive[prefix] &&
			e.Code == CodeMissingRequired && (rest == "value" || rest == "series") {
			continue
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		rep.Errors = append(rep.Errors, e)
	}
	return rep
}

func mapCode(typ, msg string) string {
	switch {
	case typ == TypeEnum:
		return CodeInvalidEnum
	case strings.Contains(msg, "out of range"):
		return CodeOutOfRange
	case strings.Contains(msg, "less than slow"):
		return CodeInvalidRelation
	case strings.Contains(msg, "at least one condition"):
		return CodeMissingRequired
	case strings.Contains(msg, "does not support 'field'"),
		strings.HasPrefix(msg, "field must be one of"):
		return CodeInvalidField
	case strings.Contains(msg, "unknown indicator"):
		return CodeInvalidValue
	case strings.Contains(msg, "requires two series operands"):
		return CodeInvalidOperand
	case msg == msgFieldRequired:
		return CodeMissingRequired
	}
	return CodeInvalidValue
}

// operandPrefix splits path at its first left/right segment, returning the
// path up to and including it and the remainder after it.
func operandPrefix(path string) (prefix, rest string, ok bool) {
	segs := strings.Split(path, ".")
	for i, seg := range segs {
		if seg == "left" || seg == "right" {
			return strings.Join(segs[:i+1], "."), strings.Join(segs[i+1:], "."), true
		}
	}
	return "", "", false
}

func hasSegment(path, name string) bool {
	for _, seg := range strings.Split(path, ".") {
		if seg == name {
			return true
		}
	}
	return false
}
