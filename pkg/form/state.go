package form

import (
	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/credentials"
	"github.com/dmitrymomot/storefront/pkg/field"
)

// Mode selects which fields gate submission.
type Mode int

const (
	// ModeSignIn requires email and password.
	ModeSignIn Mode = iota
	// ModeSignUp also requires a display name.
	ModeSignUp
)

func (m Mode) String() string {
	switch m {
	case ModeSignIn:
		return "sign_in"
	case ModeSignUp:
		return "sign_up"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeSignUp {
		return ModeSignIn
	}
	return ModeSignUp
}

func (m Mode) valid() bool {
	return m == ModeSignIn || m == ModeSignUp
}

// Values holds the validated input of a submittable form. Name is zero in
// ModeSignIn.
type Values struct {
	Email    credentials.EmailAddress
	Password credentials.Password
	Name     credentials.Name
}

// State is a point-in-time view of the form.
type State struct {
	Mode     Mode
	Email    field.State[credentials.EmailAddress]
	Password field.State[credentials.Password]
	Name     field.State[credentials.Name]

	Submittable bool
	Submitting  bool
	Resetting   bool

	// Err is the last authentication failure and LastError its message.
	// Both are cleared when the next request starts.
	Err       *auth.Error
	LastError string

	// ResetSent is set once a reset link was sent; Notice carries the
	// confirmation message.
	ResetSent bool
	Notice    string

	// User is the account returned by the last successful submit.
	User *auth.User
}

// phase tracks requests in flight.
type phase int

const (
	phaseIdle phase = iota
	phaseSubmitting
	phaseResetting
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseSubmitting:
		return "submitting"
	case phaseResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

type event string

const (
	evSubmit event = "submit"
	evReset  event = "reset"
	evDone   event = "done"
)
