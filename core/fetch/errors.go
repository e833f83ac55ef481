package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error codes. Every failure surfaced by an Executor is normalized into an
// *Error carrying one of these.
const (
	CodeUnauthorized   = "unauthorized"
	CodeTransport      = "transport"
	CodeHTTP           = "http_error"
	CodeInternal       = "internal"
	CodeCancelled      = "cancelled"
	CodeClosed         = "closed"
	CodeRetryScheduled = "retry_scheduled"
)

// Error is the single error value shape surfaced to callers: transport
// failures, non-2xx responses and synchronous panics of the wrapped
// operation all end up here.
type Error struct {
	StatusCode int    `json:"status_code,omitempty"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthorized returns the terminal authorization failure; it is never retried.
func Unauthorized(msg string) *Error {
	return &Error{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: msg}
}

// Normalize wraps err into an *Error if it is not one already.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var ferr *Error
	if errors.As(err, &ferr) {
		return ferr
	}
	return &Error{Code: CodeTransport, Message: err.Error(), Err: err}
}

// IsCancellation reports whether err is a cooperative cancellation signal.
// Cancellations are not errors: they are silently discarded and never touch
// executor state.
func IsCancellation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var ferr *Error
	return errors.As(err, &ferr) && ferr.Code == CodeCancelled
}

// IsUnauthorized reports whether err is an authorization failure
// (HTTP-401-equivalent). Unauthorized failures are terminal.
func IsUnauthorized(err error) bool {
	var ferr *Error
	if !errors.As(err, &ferr) {
		return false
	}
	return ferr.Code == CodeUnauthorized || ferr.StatusCode == http.StatusUnauthorized
}

// IsRetryScheduled reports whether err is the in-progress retry notice an
// Executor leaves in its Err state between attempts.
func IsRetryScheduled(err error) bool {
	var ferr *Error
	return errors.As(err, &ferr) && ferr.Code == CodeRetryScheduled
}

func cancelled(err error) *Error {
	return &Error{Code: CodeCancelled, Message: "request cancelled", Err: err}
}
