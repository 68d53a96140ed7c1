package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error. Status is used when the error
// crosses the HTTP boundary of the serve command.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation        = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound          = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConstraint        = New("CONSTRAINT_VIOLATION", http.StatusConflict, "constraint violation")
	ErrStorage           = New("STORAGE_ERROR", http.StatusInternalServerError, "storage failure")
	ErrMissingCapability = New("MISSING_CAPABILITY", http.StatusNotImplemented, "capability unavailable")
	ErrNoData            = New("NO_DATA", http.StatusNotFound, "no data available")
	ErrInternal          = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return HasCode(err, ErrValidation.Code) }

// IsConstraint reports whether err is a storage-level constraint violation.
func IsConstraint(err error) bool { return HasCode(err, ErrConstraint.Code) }

// IsMissingCapability reports whether err signals an unavailable capability.
func IsMissingCapability(err error) bool { return HasCode(err, ErrMissingCapability.Code) }

// IsNoData reports whether err signals that a report had nothing to render.
func IsNoData(err error) bool { return HasCode(err, ErrNoData.Code) }

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsMissingCapability(err), IsNoData(err):
		return 0
	case IsValidation(err):
		return 2
	default:
		return 1
	}
}
