package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and the HTTP layer.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindState         Kind = "STATE"
	KindAuthorization Kind = "AUTHORIZATION"
	KindConcurrency   Kind = "CONCURRENCY"
	KindConfiguration Kind = "CONFIGURATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindExternal      Kind = "EXTERNAL"
)

// Error is a classified error. Concurrency errors are retryable; everything
// else aborts the requested mutation.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller should re-fetch and retry.
func (e *Error) Retryable() bool {
	return e.Kind == KindConcurrency
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

func State(format string, args ...interface{}) *Error {
	return newf(KindState, format, args...)
}

func Authorization(format string, args ...interface{}) *Error {
	return newf(KindAuthorization, format, args...)
}

func Concurrency(format string, args ...interface{}) *Error {
	return newf(KindConcurrency, format, args...)
}

func Configuration(format string, args ...interface{}) *Error {
	return newf(KindConfiguration, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func External(msg string, err error) *Error {
	return &Error{Kind: KindExternal, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or "" when err carries no classification.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
