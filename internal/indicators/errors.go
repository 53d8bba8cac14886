package indicators

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a dispatch failure.
type Code string

const (
	CodeLookup               Code = "lookup_error"
	CodeUnsupportedTimeframe Code = "unsupported_timeframe"
	CodeMissingColumns       Code = "missing_columns"
	CodeFieldResolution      Code = "field_resolution_error"
	CodeInvalidParams        Code = "invalid_params"
)

var (
	ErrLookup               = errors.New("indicator not registered")
	ErrUnsupportedTimeframe = errors.New("timeframe not supported")
	ErrMissingColumns       = errors.New("missing columns")
	ErrFieldResolution      = errors.New("field not available")
	ErrInvalidParams        = errors.New("invalid indicator params")
)

var sentinels = map[Code]error{
	CodeLookup:               ErrLookup,
	CodeUnsupportedTimeframe: ErrUnsupportedTimeframe,
	CodeMissingColumns:       ErrMissingColumns,
	CodeFieldResolution:      ErrFieldResolution,
	CodeInvalidParams:        ErrInvalidParams,
}

// CalcError is returned by Registry.Calc. It unwraps to one of the Err* sentinels.
type CalcError struct {
	Code      Code
	Indicator string
	Message   string
	Missing   []string
}

func (e *CalcError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the sentinel for the error code.
func (e *CalcError) Unwrap() error {
	return sentinels[e.Code]
}

func lookupError(name string) *CalcError {
	return &CalcError{Code: CodeLookup, Indicator: name, Message: "indicator not registered: " + name}
}

func timeframeError(name, tf string) *CalcError {
	return &CalcError{
		Code:      CodeUnsupportedTimeframe,
		Indicator: name,
		Message:   fmt.Sprintf("timeframe not supported for %s: %s", name, tf),
	}
}

func missingColumnsError(name string, missing []string) *CalcError {
	return &CalcError{
		Code:      CodeMissingColumns,
		Indicator: name,
		Message:   "missing columns: [" + strings.Join(missing, ", ") + "]",
		Missing:   missing,
	}
}

func fieldError(name, field string) *CalcError {
	return &CalcError{
		Code:      CodeFieldResolution,
		Indicator: name,
		Message:   fmt.Sprintf("field not available for %s: %q", name, field),
	}
}

func paramsError(name string, err error) *CalcError {
	return &CalcError{Code: CodeInvalidParams, Indicator: name, Message: err.Error()}
}

// invalidParam wraps a compute-time parameter failure.
func invalidParam(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidParams, err)
}
