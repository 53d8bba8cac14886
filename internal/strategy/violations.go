package strategy

import (
	"fmt"
	"strconv"
	"strings"
)

// Raw violation types.
const (
	TypeMissing    = "missing"
	TypeEnum       = "enum"
	TypeTypeError  = "type_error"
	TypeValueError = "value_error"
)

const msgFieldRequired = "field required"

// Violation is a single schema failure at a structural location.
// Loc elements are field names (string) or list indices (int).
type Violation struct {
	Loc  []any
	Type string
	Msg  string
}

// Path renders Loc as dotted names with list indices attached to the preceding name.
func (v Violation) Path() string {
	return RenderPath(v.Loc)
}

// ValidationError aggregates every violation found while constructing a value.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation error(s)", len(e.Violations))
	for _, v := range e.Violations {
		fmt.Fprintf(&b, "\n%s: %s", v.Path(), v.Msg)
	}
	return b.String()
}

// RenderPath formats a location like conditions[0].left.params.window.
func RenderPath(loc []any) string {
	var segs []string
	for _, part := range loc {
		if i, ok := part.(int); ok {
			idx := "[" + strconv.Itoa(i) + "]"
			if len(segs) == 0 {
				segs = append(segs, idx)
			} else {
				segs[len(segs)-1] += idx
			}
			continue
		}
		segs = append(segs, fmt.Sprint(part))
	}
	return strings.Join(segs, ".")
}

// collector accumulates violations across nested constructions.
type collector struct {
	violations []Violation
}

func (c *collector) add(loc []any, typ, msg string) {
	c.violations = append(c.violations, Violation{Loc: loc, Type: typ, Msg: msg})
}

func (c *collector) missing(loc []any) { c.add(loc, TypeMissing, msgFieldRequired) }

func (c *collector) merge(other *collector) {
	c.violations = append(c.violations, other.violations...)
}

func (c *collector) len() int { return len(c.violations) }

func (c *collector) err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: c.violations}
}

// at returns a fresh location extending loc.
func at(loc []any, parts ...any) []any {
	out := make([]any, 0, len(loc)+len(parts))
	out = append(out, loc...)
	return append(out, parts...)
}

// permitted renders an enum mismatch message.
func permitted(values []string) string {
	return "unexpected value; permitted: " + quoted(values)
}

// quotedList renders values as ['a', 'b'].
func quotedList(values []string) string {
	return "[" + quoted(values) + "]"
}

func quoted(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = "'" + v + "'"
	}
	return strings.Join(out, ", ")
}
