package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryProtocol   Category = "protocol"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// FormError is a structured error with suggestions and documentation.
type FormError struct {
	// Code is a unique error identifier (e.g., "F001").
	Code string

	// Category is the error type (runtime, config, etc.).
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
func (e *FormError) Error() string {
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
func (e *FormError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a FormError with the same code.
func (e *FormError) Is(target error) bool {
	t, ok := target.(*FormError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *FormError) WithSuggestion(s string) *FormError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *FormError) WithExample(ex string) *FormError {
	e.Example = ex
	return e
}

// WithDetail replaces the registered explanation.
func (e *FormError) WithDetail(d string) *FormError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *FormError) Wrap(err error) *FormError {
	e.Wrapped = err
	return e
}

// New creates a FormError from a registered error code.
func New(code string) *FormError {
	template, ok := registry[code]
	if !ok {
		return &FormError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &FormError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new FormError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *FormError {
	return &FormError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a FormError.
// An error that already is (or wraps) a FormError is returned as is.
func FromError(err error, code string) *FormError {
	if err == nil {
		return nil
	}
	var fe *FormError
	if errors.As(err, &fe) {
		return fe
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is or wraps a FormError with the given code.
func HasCode(err error, code string) bool {
	var fe *FormError
	return errors.As(err, &fe) && fe.Code == code
}
