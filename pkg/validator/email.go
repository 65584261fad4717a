package validator

import (
	"regexp"
	"strings"
)

const emailAtom = "[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]"

// emailRegex is the RFC 5322 address grammar without comments or folding whitespace.
var emailRegex = regexp.MustCompile(
	`^(?:` + emailAtom + `+(?:\.` + emailAtom + `+)*` +
		`|"(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21\x23-\x5b\x5d-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")` +
		`@(?:(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?` +
		`|\[(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?` +
		`|[a-zA-Z0-9-]*[a-zA-Z0-9]:(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21-\x5a\x53-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])+)\])$`,
)

// ValidEmail checks value as given against the RFC 5322 address pattern.
// Surrounding whitespace fails the rule; ValidateEmail trims before applying it.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Key:     "validation.email.invalid_format",
			Params: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidateEmail trims raw and checks it against the RFC 5322 pattern.
// It returns the trimmed address, ErrEmailEmpty or ErrEmailInvalidFormat.
func ValidateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrEmailEmpty
	}

	if err := Apply(ValidEmail(FieldEmail, email)); err != nil {
		return "", ErrEmailInvalidFormat
	}

	return email, nil
}
