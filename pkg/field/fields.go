package field

import (
	"github.com/dmitrymomot/storefront/pkg/credentials"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// NewEmailField validates email addresses. An empty field settles to Idle
// without an error.
func NewEmailField(opts ...Option) *Controller[credentials.EmailAddress] {
	cfg := newConfig(append([]Option{WithName(validator.FieldEmail)}, opts...))
	return newController(credentials.NewEmailAddress, cfg.catalog.Email, cfg)
}

// NewPasswordField validates passwords against the default policy or the one
// set with WithPasswordPolicy. The message lists every unmet requirement.
func NewPasswordField(opts ...Option) *Controller[credentials.Password] {
	cfg := newConfig(append([]Option{WithName(validator.FieldPassword)}, opts...))
	policy := cfg.policy
	return newController(func(raw string) (credentials.Password, error) {
		return credentials.NewPasswordWithPolicy(raw, policy)
	}, cfg.catalog.Password, cfg)
}

// NewNameField validates display names, 3 to 30 letters unless WithNameLength is set.
func NewNameField(opts ...Option) *Controller[credentials.Name] {
	cfg := newConfig(append([]Option{WithName(validator.FieldName)}, opts...))
	nameOpts := cfg.nameOpts
	return newController(func(raw string) (credentials.Name, error) {
		return credentials.NewName(raw, nameOpts...)
	}, cfg.catalog.Name, cfg)
}

// NewMobileField validates mobile numbers for the region set with WithRegion.
func NewMobileField(opts ...Option) *Controller[credentials.MobileNumber] {
	cfg := newConfig(append([]Option{WithName(validator.FieldMobile)}, opts...))
	region := cfg.region
	return newController(func(raw string) (credentials.MobileNumber, error) {
		return credentials.NewMobileNumber(raw, validator.WithRegion(region))
	}, cfg.catalog.Mobile, cfg)
}
