package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/email"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// EnvPrefix is prepended to every configuration variable.
const EnvPrefix = "STOREFRONT_"

// DevelopmentSecret is the default AuthSecret. Validate rejects it outside
// the development environment.
const DevelopmentSecret = "storefront-development-secret"

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds runtime settings read from STOREFRONT_* variables.
type Config struct {
	Env       string `env:"ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
	LogFile   string `env:"LOG_FILE"`

	Debounce    time.Duration `env:"DEBOUNCE" envDefault:"300ms"`
	PhoneRegion string        `env:"PHONE_REGION" envDefault:"US"`
	NameMin     int           `env:"NAME_MIN" envDefault:"3"`
	NameMax     int           `env:"NAME_MAX" envDefault:"30"`
	PasswordMin int           `env:"PASSWORD_MIN" envDefault:"8"`
	PasswordMax int           `env:"PASSWORD_MAX" envDefault:"64"`

	// Locale selects the message language. Empty falls back to $LANG.
	Locale string `env:"LOCALE"`

	FirebaseAPIKey       string        `env:"FIREBASE_API_KEY"`
	FirebaseEmulatorHost string        `env:"FIREBASE_EMULATOR_HOST"`
	FirebaseTimeout      time.Duration `env:"FIREBASE_TIMEOUT" envDefault:"15s"`

	// AuthSecret signs password reset tokens of the in-memory backend.
	AuthSecret  string        `env:"AUTH_SECRET" envDefault:"storefront-development-secret"`
	AuthLatency time.Duration `env:"AUTH_LATENCY"`

	// AuthMaxAttempts wrong passwords lock an account of the in-memory backend
	// for AuthLockout. Zero disables the lock.
	AuthMaxAttempts int           `env:"AUTH_MAX_ATTEMPTS" envDefault:"5"`
	AuthLockout     time.Duration `env:"AUTH_LOCKOUT" envDefault:"1m"`

	// Mail delivers password reset links of the in-memory backend. Without
	// Postmark tokens or a dev directory the links are only logged.
	Mail email.Config `envPrefix:"MAIL_"`
}

// LoadConfig reads and validates the configuration.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	switch logger.Format(c.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		errs = append(errs, fmt.Errorf("log format %q: want json or text", c.LogFormat))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce %s is negative", c.Debounce))
	}
	if c.NameMin < 1 || c.NameMax < c.NameMin {
		errs = append(errs, fmt.Errorf("name length %d..%d is not a valid range", c.NameMin, c.NameMax))
	}
	if c.PasswordMin < 1 || c.PasswordMax < c.PasswordMin {
		errs = append(errs, fmt.Errorf("password length %d..%d is not a valid range", c.PasswordMin, c.PasswordMax))
	}
	if c.usesFirebase() && c.FirebaseTimeout <= 0 {
		errs = append(errs, fmt.Errorf("firebase timeout %s must be positive", c.FirebaseTimeout))
	}
	if c.AuthMaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("auth max attempts %d is negative", c.AuthMaxAttempts))
	}
	if c.AuthMaxAttempts > 0 && c.AuthLockout <= 0 {
		errs = append(errs, fmt.Errorf("auth lockout %s must be positive", c.AuthLockout))
	}
	if !c.usesFirebase() {
		switch {
		case c.AuthSecret == "":
			errs = append(errs, errors.New("auth secret is required for the memory backend"))
		case c.AuthSecret == DevelopmentSecret && logger.ParseEnvironment(c.Env) != logger.Development:
			errs = append(errs, fmt.Errorf("auth secret must be set in the %s environment", logger.ParseEnvironment(c.Env)))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// PasswordPolicy is the default policy with the configured length bounds.
func (c Config) PasswordPolicy() validator.PasswordPolicy {
	p := validator.DefaultPasswordPolicy()
	reqs := make([]validator.Requirement, 0, len(p.Requirements))
	for _, r := range p.Requirements {
		switch r.Kind {
		case validator.RequireMinLength:
			r = validator.MinLength(c.PasswordMin)
		case validator.RequireMaxLength:
			r = validator.MaxLength(c.PasswordMax)
		}
		reqs = append(reqs, r)
	}
	p.Requirements = reqs
	return p
}

func (c Config) usesFirebase() bool {
	return c.FirebaseAPIKey != "" || c.FirebaseEmulatorHost != ""
}
