package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

const (
	DefaultNameMinLength = 3
	DefaultNameMaxLength = 30
)

var alphaRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

type nameConfig struct {
	min int
	max int
}

// NameOption configures ValidateName.
type NameOption func(*nameConfig)

// WithNameLength overrides the accepted length range. Non-positive bounds are ignored.
func WithNameLength(min, max int) NameOption {
	return func(c *nameConfig) {
		if min > 0 {
			c.min = min
		}
		if max > 0 {
			c.max = max
		}
	}
}

// CharCount counts user-perceived characters rather than bytes or runes.
func CharCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

func MinChars(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return CharCount(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Key:     "validation.min_length",
			Params: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

func MaxChars(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return CharCount(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Key:     "validation.max_length",
			Params: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// ValidAlpha validates that a string contains only ASCII letters.
func ValidAlpha(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return alphaRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must contain only letters",
			Key:     "validation.alpha",
			Params: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidateName trims raw and checks length first, then the letters-only pattern.
// Only the first failure is reported, as a *NameError.
func ValidateName(raw string, opts ...NameOption) (string, error) {
	cfg := nameConfig{min: DefaultNameMinLength, max: DefaultNameMaxLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	name := strings.TrimSpace(raw)

	if Apply(MinChars(FieldName, name, cfg.min)) != nil {
		return "", &NameError{Kind: NameTooShort, Limit: cfg.min}
	}
	if Apply(MaxChars(FieldName, name, cfg.max)) != nil {
		return "", &NameError{Kind: NameTooLong, Limit: cfg.max}
	}
	if Apply(ValidAlpha(FieldName, name)) != nil {
		return "", &NameError{Kind: NameInvalidCharacters}
	}

	return name, nil
}
