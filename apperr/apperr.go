// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"net/http"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrAuth          = errors.New("authentication failed")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrPhase         = errors.New("invalid for current board status")
	ErrQuotaExceeded = errors.New("quota exceeded")
	ErrInternal      = errors.New("internal error")
)

// InternalMessage is what callers see for anything that is not a domain error.
const InternalMessage = "Internal server error"

// Error is a domain error with a user-facing message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// New creates a domain error of the given kind.
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Validation(msg string) error { return New(ErrValidation, msg) }
func Forbidden(msg string) error  { return New(ErrForbidden, msg) }
func NotFound(msg string) error   { return New(ErrNotFound, msg) }
func Conflict(msg string) error   { return New(ErrConflict, msg) }
func Phase(msg string) error      { return New(ErrPhase, msg) }

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrPhase), errors.Is(err, ErrQuotaExceeded):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message. Errors that are not domain
// errors never leak their text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.kind != ErrInternal {
		return e.msg
	}
	return InternalMessage
}

// IsDomain reports whether err carries a user-facing message.
func IsDomain(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind != ErrInternal
}
