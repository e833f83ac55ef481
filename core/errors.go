package core

import "github.com/pkg/errors"

// FieldError pins a validation failure to a specific input field, e.g. a
// profile email or an assignment score. The API error handler serializes a
// ValidationError's fields as the response body.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is what the service layer returns when input fails domain
// validation: a bad profile update, an illegal assignment status transition,
// a score out of range.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// shutdown marks an error as unrecoverable; the API error handler asks the
// server for a graceful shutdown when it sees one.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
