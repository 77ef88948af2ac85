package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig        = "CONFIG"
	ErrConfigMissing = "CONFIG_MISSING"
	ErrConfigInvalid = "CONFIG_INVALID"
	ErrHTTP          = "HTTP"
	ErrFormat        = "FORMAT"
	ErrStorage       = "STORAGE"
	ErrNetwork       = "NETWORK"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Error() renders it in the dashboard's error block layout:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error

	// StatusCode is the HTTP status for ErrHTTP errors, zero otherwise.
	StatusCode int
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrNetwork code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrNetwork,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewHTTP creates an ErrHTTP error for a non-success response status.
func NewHTTP(status int) *Error {
	msg := fmt.Sprintf("HTTP %d", status)
	if text := http.StatusText(status); text != "" {
		msg += ": " + text
	}
	return &Error{
		Code:       ErrHTTP,
		Message:    msg,
		Suggestion: "Check that the proxy HTTP API is enabled and the endpoint path is correct",
		StatusCode: status,
	}
}

// Error implements the error interface with the multi-line block format.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	// Include cause if present (why it failed)
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	// Include suggestion if present (how to fix)
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Summary returns a single-line description suitable for inline display.
func (e *Error) Summary() string {
	if e.Cause != nil && e.Code == ErrNetwork {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var dashErr *Error
	if errors.As(err, &dashErr) {
		return dashErr.Code == code
	}
	return false
}

// StatusCode returns the HTTP status carried by an ErrHTTP error, or 0.
func StatusCode(err error) int {
	var dashErr *Error
	if errors.As(err, &dashErr) {
		return dashErr.StatusCode
	}
	return 0
}

// Summary returns the single-line form of err. Structured errors use their
// Summary; anything else falls back to err.Error().
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var dashErr *Error
	if errors.As(err, &dashErr) {
		return dashErr.Summary()
	}
	return err.Error()
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
