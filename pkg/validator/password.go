package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// DefaultSpecialCharacters is the set counted by MinSpecialChars when a policy names none.
const DefaultSpecialCharacters = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// RequirementKind identifies a password requirement.
type RequirementKind int

const (
	RequireMinLength RequirementKind = iota + 1
	RequireMaxLength
	RequireUppercase
	RequireLowercase
	RequireDigits
	RequireSpecialChars
	RequireNoSpaces
	RequirePattern
)

// Requirement is one password rule. It is comparable, so failures can be matched with ==.
type Requirement struct {
	Kind    RequirementKind
	Count   int
	Pattern string
}

func MinLength(n int) Requirement       { return Requirement{Kind: RequireMinLength, Count: n} }
func MaxLength(n int) Requirement       { return Requirement{Kind: RequireMaxLength, Count: n} }
func MinUppercase(n int) Requirement    { return Requirement{Kind: RequireUppercase, Count: n} }
func MinLowercase(n int) Requirement    { return Requirement{Kind: RequireLowercase, Count: n} }
func MinDigits(n int) Requirement       { return Requirement{Kind: RequireDigits, Count: n} }
func MinSpecialChars(n int) Requirement { return Requirement{Kind: RequireSpecialChars, Count: n} }
func NoSpaces() Requirement             { return Requirement{Kind: RequireNoSpaces} }

// MatchesPattern requires a full match of expr. An expression that does not compile is never met.
func MatchesPattern(expr string) Requirement {
	return Requirement{Kind: RequirePattern, Pattern: expr}
}

func (r Requirement) String() string {
	switch r.Kind {
	case RequireMinLength:
		return fmt.Sprintf("minLength(%d)", r.Count)
	case RequireMaxLength:
		return fmt.Sprintf("maxLength(%d)", r.Count)
	case RequireUppercase:
		return fmt.Sprintf("uppercaseLetters(%d)", r.Count)
	case RequireLowercase:
		return fmt.Sprintf("lowercaseLetters(%d)", r.Count)
	case RequireDigits:
		return fmt.Sprintf("digits(%d)", r.Count)
	case RequireSpecialChars:
		return fmt.Sprintf("specialCharacters(%d)", r.Count)
	case RequireNoSpaces:
		return "noSpaces"
	case RequirePattern:
		return fmt.Sprintf("regex(%s)", r.Pattern)
	default:
		return "unknown"
	}
}

// TranslationKey is the message catalog key describing the requirement.
func (r Requirement) TranslationKey() string {
	switch r.Kind {
	case RequireMinLength:
		return "validation.password.min_length"
	case RequireMaxLength:
		return "validation.password.max_length"
	case RequireUppercase:
		return "validation.password.uppercase"
	case RequireLowercase:
		return "validation.password.lowercase"
	case RequireDigits:
		return "validation.password.digits"
	case RequireSpecialChars:
		return "validation.password.special"
	case RequireNoSpaces:
		return "validation.password.no_spaces"
	case RequirePattern:
		return "validation.password.pattern"
	default:
		return "validation.password.invalid"
	}
}

// PasswordPolicy is an ordered requirement list plus the special character set.
type PasswordPolicy struct {
	Requirements      []Requirement
	SpecialCharacters string
}

// DefaultPasswordPolicy: 8-64 characters, one of each character class, no spaces.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		Requirements: []Requirement{
			MinLength(8),
			MaxLength(64),
			MinUppercase(1),
			MinLowercase(1),
			MinDigits(1),
			MinSpecialChars(1),
			NoSpaces(),
		},
		SpecialCharacters: DefaultSpecialCharacters,
	}
}

// PasswordRequirement builds the Rule checking value against r.
func PasswordRequirement(value string, r Requirement, specials string) Rule {
	return Rule{
		Check: func() bool {
			return requirementMet(value, r, specials)
		},
		Error: ValidationError{
			Field:   FieldPassword,
			Message: requirementMessage(r),
			Key:     r.TranslationKey(),
			Params: map[string]any{
				"field":   FieldPassword,
				"count":   r.Count,
				"pattern": r.Pattern,
			},
		},
	}
}

// ValidatePassword evaluates every requirement of policy and reports all unmet ones in a *PasswordError.
// The password is never trimmed.
func ValidatePassword(raw string, policy PasswordPolicy) (string, error) {
	specials := policy.SpecialCharacters
	if specials == "" {
		specials = DefaultSpecialCharacters
	}

	var (
		failures []Requirement
		verrs    ValidationErrors
	)
	for _, r := range policy.Requirements {
		if err := Apply(PasswordRequirement(raw, r, specials)); err != nil {
			failures = append(failures, r)
			ve, _ := AsValidationErrors(err)
			verrs = append(verrs, ve...)
		}
	}

	if len(failures) == 0 {
		return raw, nil
	}

	return "", &PasswordError{Failures: failures, Errors: verrs}
}

func requirementMet(value string, r Requirement, specials string) bool {
	switch r.Kind {
	case RequireMinLength:
		return CharCount(value) >= r.Count
	case RequireMaxLength:
		return CharCount(value) <= r.Count
	case RequireUppercase:
		return countRunes(value, unicode.IsUpper) >= r.Count
	case RequireLowercase:
		return countRunes(value, unicode.IsLower) >= r.Count
	case RequireDigits:
		return countRunes(value, unicode.IsDigit) >= r.Count
	case RequireSpecialChars:
		return countRunes(value, func(c rune) bool { return strings.ContainsRune(specials, c) }) >= r.Count
	case RequireNoSpaces:
		return !strings.Contains(value, " ")
	case RequirePattern:
		re, err := regexp.Compile(`^(?:` + r.Pattern + `)$`)
		if err != nil {
			return false
		}
		return re.MatchString(value)
	default:
		return false
	}
}

func requirementMessage(r Requirement) string {
	switch r.Kind {
	case RequireMinLength:
		return fmt.Sprintf("must be at least %d characters long", r.Count)
	case RequireMaxLength:
		return fmt.Sprintf("must be at most %d characters long", r.Count)
	case RequireUppercase:
		return fmt.Sprintf("must contain at least %d uppercase letter(s)", r.Count)
	case RequireLowercase:
		return fmt.Sprintf("must contain at least %d lowercase letter(s)", r.Count)
	case RequireDigits:
		return fmt.Sprintf("must contain at least %d digit(s)", r.Count)
	case RequireSpecialChars:
		return fmt.Sprintf("must contain at least %d special character(s)", r.Count)
	case RequireNoSpaces:
		return "must not contain spaces"
	case RequirePattern:
		return "must match the required pattern"
	default:
		return "is invalid"
	}
}

func countRunes(s string, match func(rune) bool) int {
	n := 0
	for _, c := range s {
		if match(c) {
			n++
		}
	}
	return n
}
