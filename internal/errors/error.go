package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime   Category = "runtime"
	CategoryHydration Category = "hydration"
	CategoryConfig    Category = "config"
	CategoryInternal  Category = "internal"
	CategoryQuery     Category = "query"
	CategoryCLI       Category = "cli"
)

// VtlError is a structured error with a code, suggestions and documentation.
type VtlError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VtlError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VtlError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a VtlError with the same code.
func (e *VtlError) Is(target error) bool {
	var t *VtlError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VtlError) WithSuggestion(s string) *VtlError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *VtlError) WithExample(ex string) *VtlError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VtlError) WithDetail(d string) *VtlError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *VtlError) Wrap(err error) *VtlError {
	e.Wrapped = err
	return e
}

// New creates a VtlError from a registered error code.
func New(code string) *VtlError {
	template, ok := registry[code]
	if !ok {
		return &VtlError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VtlError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
		DocURL:     template.DocURL,
	}
}

// Newf creates a new VtlError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VtlError {
	return &VtlError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VtlError with the given code.
// A VtlError is returned unchanged.
func FromError(err error, code string) *VtlError {
	if err == nil {
		return nil
	}
	var ve *VtlError
	if errors.As(err, &ve) {
		return ve
	}
	return New(code).Wrap(err)
}

// Sentinel returns a comparable error value for a code, for use with
// errors.Is.
func Sentinel(code string) error {
	return &VtlError{Code: code, Message: registry[code].Message}
}
