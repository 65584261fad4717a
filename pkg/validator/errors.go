package validator

import (
	"errors"
	"fmt"
)

// Email errors.
var (
	ErrEmailEmpty         = errors.New("email address is empty")
	ErrEmailInvalidFormat = errors.New("invalid email address")
)

// Mobile number errors.
var (
	ErrMobileInvalidFormat = errors.New("mobile number is invalid")
)

// Name error sentinels, matched by NameError through errors.Is.
var (
	ErrNameTooShort          = errors.New("name is too short")
	ErrNameTooLong           = errors.New("name is too long")
	ErrNameInvalidCharacters = errors.New("name contains invalid characters")
)

// ErrPasswordInvalid is matched by every *PasswordError.
var ErrPasswordInvalid = errors.New("password does not meet requirements")

// NameErrorKind enumerates the reasons a name is rejected.
type NameErrorKind int

const (
	NameTooShort NameErrorKind = iota + 1
	NameTooLong
	NameInvalidCharacters
)

func (k NameErrorKind) String() string {
	switch k {
	case NameTooShort:
		return "tooShort"
	case NameTooLong:
		return "tooLong"
	case NameInvalidCharacters:
		return "invalidCharacters"
	default:
		return "unknown"
	}
}

// NameError carries the failed bound for length failures.
type NameError struct {
	Kind  NameErrorKind
	Limit int
}

func (e *NameError) Error() string {
	switch e.Kind {
	case NameTooShort:
		return fmt.Sprintf("name is too short: minimum %d characters", e.Limit)
	case NameTooLong:
		return fmt.Sprintf("name is too long: maximum %d characters", e.Limit)
	default:
		return ErrNameInvalidCharacters.Error()
	}
}

func (e *NameError) Unwrap() error {
	switch e.Kind {
	case NameTooShort:
		return ErrNameTooShort
	case NameTooLong:
		return ErrNameTooLong
	default:
		return ErrNameInvalidCharacters
	}
}

// PasswordError lists every requirement the password did not meet, in policy order.
type PasswordError struct {
	Failures []Requirement
	Errors   ValidationErrors
}

func (e *PasswordError) Error() string {
	return ErrPasswordInvalid.Error() + ": " + e.Errors.Error()
}

func (e *PasswordError) Unwrap() []error {
	return []error{ErrPasswordInvalid, e.Errors}
}

// Unmet reports whether r is among the failed requirements.
func (e *PasswordError) Unmet(r Requirement) bool {
	for _, f := range e.Failures {
		if f == r {
			return true
		}
	}
	return false
}
