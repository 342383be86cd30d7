// Package errors defines the application error taxonomy shared by the API layer.
// Every failure a controller raises is one of a small closed set of tagged
// variants carrying an explicit HTTP status and a user-safe message; the
// central classifier never needs to match on message strings.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind identifies the error variant.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not-found"
	KindConflict        Kind = "conflict"
	KindInternal        Kind = "internal"
)

// FieldError describes a single failed field in a validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is a structured application error. Message is safe to disclose to
// clients; Err holds the underlying cause and is only ever logged.
type AppError struct {
	Kind       Kind
	HTTPStatus int
	Message    string
	Fields     []FieldError
	Err        error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithCause attaches the underlying error without changing what clients see.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewValidation creates a 400 error with an itemized field list.
func NewValidation(message string, fields ...FieldError) *AppError {
	return &AppError{
		Kind:       KindValidation,
		HTTPStatus: http.StatusBadRequest,
		Message:    message,
		Fields:     fields,
	}
}

// NewUnauthenticated creates a 401 error.
func NewUnauthenticated(message string) *AppError {
	return &AppError{
		Kind:       KindUnauthenticated,
		HTTPStatus: http.StatusUnauthorized,
		Message:    message,
	}
}

// NewNotFound creates a 404 error. Ownership violations surface through this
// variant as well, so a foreign tenant cannot distinguish "exists" from
// "does not exist".
func NewNotFound(message string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		HTTPStatus: http.StatusNotFound,
		Message:    message,
	}
}

// NewConflict creates a 409 error for uniqueness violations.
func NewConflict(message string) *AppError {
	return &AppError{
		Kind:       KindConflict,
		HTTPStatus: http.StatusConflict,
		Message:    message,
	}
}

// NewInternal creates a 500 error wrapping an unexpected cause. The message
// disclosed to the client is decided by the classifier, not here.
func NewInternal(err error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		HTTPStatus: http.StatusInternalServerError,
		Message:    "Internal Server Error",
		Err:        err,
	}
}

// As unwraps err into an *AppError if one is present in its chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
