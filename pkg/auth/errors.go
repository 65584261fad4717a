package auth

import (
	"context"
	"errors"
	"net"
)

// Kind classifies authentication failures shown to the user.
type Kind string

const (
	KindInvalidEmail      Kind = "invalidEmail"
	KindWrongPassword     Kind = "wrongPassword"
	KindUserNotFound      Kind = "userNotFound"
	KindEmailAlreadyInUse Kind = "emailAlreadyInUse"
	KindWeakPassword      Kind = "weakPassword"
	KindNetwork           Kind = "networkError"
	KindUnknown           Kind = "unknown"
)

// Error is the only error type returned by Client implementations.
// Message is user-facing; for KindUnknown it is the backend message verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrUserNotFound)
// holds for errors built by backends with their own messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrInvalidEmail      = &Error{Kind: KindInvalidEmail, Message: "Invalid email address"}
	ErrWrongPassword     = &Error{Kind: KindWrongPassword, Message: "Incorrect password"}
	ErrUserNotFound      = &Error{Kind: KindUserNotFound, Message: "No account found with this email"}
	ErrEmailAlreadyInUse = &Error{Kind: KindEmailAlreadyInUse, Message: "Email address is already in use"}
	ErrWeakPassword      = &Error{Kind: KindWeakPassword, Message: "Password is too weak"}
	ErrNetwork           = &Error{Kind: KindNetwork, Message: "Network error occurred"}

	// ErrUnknown matches every Unknown error through errors.Is.
	ErrUnknown = &Error{Kind: KindUnknown, Message: "Unknown error"}
)

// Reset link failures reported by backends that verify reset tokens themselves.
var (
	ErrResetLinkInvalid = Unknown("Password reset link is invalid")
	ErrResetLinkExpired = Unknown("Password reset link has expired")
)

// ErrTooManyAttempts is returned while an account is locked after repeated
// failed sign-ins.
var ErrTooManyAttempts = Unknown("Too many attempts, try again later")

// Unknown wraps a backend message that has no dedicated kind.
func Unknown(message string) *Error {
	return &Error{Kind: KindUnknown, Message: message}
}

// AsError converts any error into an *Error. Transport failures and context
// deadlines become ErrNetwork, everything else is passed through as Unknown.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr
	}

	var nerr net.Error
	if errors.As(err, &nerr) || errors.Is(err, context.DeadlineExceeded) {
		return ErrNetwork
	}

	return Unknown(err.Error())
}

// KindOf returns the Kind of err, or "" for nil.
func KindOf(err error) Kind {
	if aerr := AsError(err); aerr != nil {
		return aerr.Kind
	}
	return ""
}
