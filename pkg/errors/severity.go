// Package errors provides severity-aware error types for valuation inputs and faults.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error codes
const (
	ErrCodeZeroDivisor   = "ZERO_DIVISOR"
	ErrCodeMissingValue  = "MISSING_VALUE"
	ErrCodeInvalidNumber = "INVALID_NUMBER"
	ErrCodeComputation   = "COMPUTATION_FAILED"
)

// InvalidInputError reports an input that cannot be used by a calculation.
// It is raised before any arithmetic runs.
type InvalidInputError struct {
	Code     string   `json:"code"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"-"`
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s (field: %s)", e.Severity, e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// ComputationError wraps an internal fault that is not caused by the inputs.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s: %v", SeverityFatal, ErrCodeComputation, e.Op, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// NewZeroDivisorError creates an error for a field used as a divisor.
func NewZeroDivisorError(field string) *InvalidInputError {
	return &InvalidInputError{
		Code:     ErrCodeZeroDivisor,
		Field:    field,
		Message:  fmt.Sprintf("%s must not be zero", field),
		Severity: SeverityError,
	}
}

// NewMissingValueError creates an error for a required field that was not supplied.
func NewMissingValueError(field string) *InvalidInputError {
	return &InvalidInputError{
		Code:     ErrCodeMissingValue,
		Field:    field,
		Message:  fmt.Sprintf("missing required value: %s", field),
		Severity: SeverityError,
	}
}

// NewInvalidNumberError creates an error for a value that is not a decimal number.
func NewInvalidNumberError(field, raw string) *InvalidInputError {
	return &InvalidInputError{
		Code:     ErrCodeInvalidNumber,
		Field:    field,
		Message:  fmt.Sprintf("not a decimal number: %q", raw),
		Severity: SeverityError,
	}
}

// IsInvalidInput reports whether err carries an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return stderrors.As(err, &target)
}

// AsInvalidInput extracts the InvalidInputError from err, if any.
func AsInvalidInput(err error) (*InvalidInputError, bool) {
	var target *InvalidInputError
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}
