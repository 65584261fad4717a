package validator

import (
	"errors"
	"strings"
)

// Field names used in ValidationError.Field by the sign-in rules.
const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"
	FieldMobile   = "mobile"
)

// ValidationError is one failed rule. Key and Params select and fill the
// localized message; Message is the English fallback.
type ValidationError struct {
	Field   string
	Message string
	Key     string
	Params  map[string]any
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is every failure of one Apply call, in rule order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Messages returns the messages recorded for field.
func (ve ValidationErrors) Messages(field string) []string {
	var out []string
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// Keys returns the message keys in rule order.
func (ve ValidationErrors) Keys() []string {
	keys := make([]string, len(ve))
	for i, e := range ve {
		keys[i] = e.Key
	}
	return keys
}

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and returns all failures as ValidationErrors.
// It never stops at the first failure.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AsValidationErrors finds ValidationErrors in err's chain.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if err == nil || !errors.As(err, &ve) {
		return nil, false
	}
	return ve, true
}
