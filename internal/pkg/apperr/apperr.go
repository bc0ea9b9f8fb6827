// Package apperr defines the error taxonomy returned by the booking core.
// Domain-rule violations are *Error values whose Kind can be matched with
// errors.Is; anything else is an unexpected storage or connectivity failure.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrAccessDenied = errors.New("access denied")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation error")
)

// Error carries a kind and a human-readable message safe to show to callers.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error     { return New(ErrNotFound, message) }
func Unauthorized(message string) *Error { return New(ErrUnauthorized, message) }
func AccessDenied(message string) *Error { return New(ErrAccessDenied, message) }
func Conflict(message string) *Error     { return New(ErrConflict, message) }
func InvalidState(message string) *Error { return New(ErrInvalidState, message) }
func Validation(message string) *Error   { return New(ErrValidation, message) }

// Validationf formats the message.
func Validationf(format string, args ...any) *Error {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

// KindOf returns the taxonomy kind of err, or nil for unexpected failures.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

// MessageOf returns the caller-facing message or a generic one.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}
