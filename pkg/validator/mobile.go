package validator

import (
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used for numbers written without a country code.
const DefaultPhoneRegion = "US"

type mobileConfig struct {
	region string
}

// MobileOption configures ValidateMobileNumber.
type MobileOption func(*mobileConfig)

// WithRegion sets the ISO 3166-1 alpha-2 region used to parse national numbers.
func WithRegion(region string) MobileOption {
	return func(c *mobileConfig) {
		if region != "" {
			c.region = region
		}
	}
}

// ValidPhone validates value with libphonenumber metadata for region.
func ValidPhone(field, value, region string) Rule {
	return Rule{
		Check: func() bool {
			_, ok := parsePhone(value, region)
			return ok
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid phone number",
			Key:     "validation.mobile.invalid_format",
			Params: map[string]any{
				"field":  field,
				"region": region,
			},
		},
	}
}

// ValidateMobileNumber returns the number in E.164 form or ErrMobileInvalidFormat.
func ValidateMobileNumber(raw string, opts ...MobileOption) (string, error) {
	cfg := mobileConfig{region: DefaultPhoneRegion}
	for _, opt := range opts {
		opt(&cfg)
	}

	num, ok := parsePhone(raw, cfg.region)
	if !ok {
		return "", ErrMobileInvalidFormat
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func parsePhone(raw, region string) (*phonenumbers.PhoneNumber, bool) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return nil, false
	}
	return num, phonenumbers.IsValidNumber(num)
}
