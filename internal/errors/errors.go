// Package errors defines the structured error taxonomy shared by every game
// command. Each error carries a Code, a player-facing message, and optional
// metadata that is echoed back in the command's error payload.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for the command boundary.
type Code string

// Error codes.
const (
	CodeOK                   Code = "OK"
	CodeNotInitialized       Code = "NOT_INITIALIZED"
	CodeNotFound             Code = "NOT_FOUND"
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeInsufficientResource Code = "INSUFFICIENT_RESOURCE"
	CodeBudgetExceeded       Code = "BUDGET_EXCEEDED"
	CodeDeprecated           Code = "DEPRECATED"
	CodeInternal             Code = "INTERNAL"
)

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// Error is a structured error with code, message, and metadata.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds one metadata entry and returns e for chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// WithHint attaches a remediation hint.
func (e *Error) WithHint(hint string) *Error {
	return e.WithMeta("hint", hint)
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err, preserving its code when it is already an *Error.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: message, Cause: err, Meta: existing.Meta}
	}
	return &Error{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf wraps err with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// NotInitialized reports that no session state exists yet.
func NotInitialized() *Error {
	return New(CodeNotInitialized, "Game not initialized. Run 'init' first.")
}

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidInput creates an invalid input error.
func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message)
}

// InvalidInputf creates an invalid input error with a formatted message.
func InvalidInputf(format string, args ...any) *Error {
	return Newf(CodeInvalidInput, format, args...)
}

// InsufficientResourcef creates an insufficient resource error.
func InsufficientResourcef(format string, args ...any) *Error {
	return Newf(CodeInsufficientResource, format, args...)
}

// BudgetExceededf creates an encounter budget rejection.
func BudgetExceededf(format string, args ...any) *Error {
	return Newf(CodeBudgetExceeded, format, args...)
}

// Deprecatedf creates an error for a removed command or alias.
func Deprecatedf(format string, args ...any) *Error {
	return Newf(CodeDeprecated, format, args...)
}

// Internalf creates an internal error.
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}
