package credentials

import (
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

// EmailAddress holds a trimmed address that passed validator.ValidateEmail.
type EmailAddress struct {
	value string
}

// NewEmailAddress returns ErrEmailEmpty or ErrEmailInvalidFormat from the validator package on failure.
func NewEmailAddress(raw string) (EmailAddress, error) {
	v, err := validator.ValidateEmail(raw)
	if err != nil {
		return EmailAddress{}, err
	}
	return EmailAddress{value: v}, nil
}

func (e EmailAddress) String() string { return e.value }
func (e EmailAddress) IsZero() bool   { return e.value == "" }

// Password holds a raw password that satisfied the policy it was built with.
// String and LogValue never reveal it; use Reveal to hand it to an auth backend.
type Password struct {
	value string
}

// NewPassword validates raw against validator.DefaultPasswordPolicy.
func NewPassword(raw string) (Password, error) {
	return NewPasswordWithPolicy(raw, validator.DefaultPasswordPolicy())
}

// NewPasswordWithPolicy validates raw against policy and returns *validator.PasswordError on failure.
func NewPasswordWithPolicy(raw string, policy validator.PasswordPolicy) (Password, error) {
	v, err := validator.ValidatePassword(raw, policy)
	if err != nil {
		return Password{}, err
	}
	return Password{value: v}, nil
}

func (p Password) Reveal() string { return p.value }
func (p Password) IsZero() bool   { return p.value == "" }

func (p Password) String() string {
	if p.value == "" {
		return ""
	}
	return "********"
}

func (p Password) LogValue() slog.Value {
	return slog.StringValue(p.String())
}

// Name holds a trimmed, letters-only display name.
type Name struct {
	value string
}

// NewName returns *validator.NameError on failure.
func NewName(raw string, opts ...validator.NameOption) (Name, error) {
	v, err := validator.ValidateName(raw, opts...)
	if err != nil {
		return Name{}, err
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }

// MobileNumber holds a number in E.164 form.
type MobileNumber struct {
	value string
}

// NewMobileNumber returns validator.ErrMobileInvalidFormat on failure.
func NewMobileNumber(raw string, opts ...validator.MobileOption) (MobileNumber, error) {
	v, err := validator.ValidateMobileNumber(raw, opts...)
	if err != nil {
		return MobileNumber{}, err
	}
	return MobileNumber{value: v}, nil
}

func (m MobileNumber) String() string { return m.value }
func (m MobileNumber) IsZero() bool   { return m.value == "" }
