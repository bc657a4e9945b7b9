package core

import "github.com/pkg/errors"

// FieldError reports a request field that failed validation.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries the offending fields alongside the error so the
// API layer can render a field -> message map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, fields ...FieldError) error {
	return &ValidationError{Err: err, Fields: fields}
}

func (ve ValidationError) Error() string {
	if ve.Err == nil {
		return ""
	}
	return ve.Err.Error()
}

// shutdown signals that the app can no longer serve requests.
type shutdown struct {
	message string
}

// NewShutdownError returns an error that IsShutdown reports true for.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string { return s.message }

// IsShutdown checks whether err, or its cause, requires a graceful stop.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
