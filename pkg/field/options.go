package field

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/pkg/debounce"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/messages"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

type config struct {
	name     string
	delay    time.Duration
	clock    debounce.Clock
	log      *slog.Logger
	catalog  *messages.Catalog
	policy   validator.PasswordPolicy
	nameOpts []validator.NameOption
	region   string
}

func newConfig(opts []Option) *config {
	cfg := &config{
		delay:  debounce.DefaultDelay,
		clock:  debounce.SystemClock(),
		log:    logger.Discard(),
		policy: validator.DefaultPasswordPolicy(),
		region: validator.DefaultPhoneRegion,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.catalog == nil {
		cfg.catalog = messages.Default()
	}
	return cfg
}

// Option configures a Controller.
type Option func(*config)

// WithDelay sets the debounce delay. Non-positive values keep the default 300ms.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithClock replaces the wall clock, typically with a debounce.ManualClock.
func WithClock(clock debounce.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithName labels the field in logs.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithCatalog sets the message catalog used by the typed constructors.
func WithCatalog(cat *messages.Catalog) Option {
	return func(c *config) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

// WithPasswordPolicy sets the policy used by NewPasswordField.
func WithPasswordPolicy(p validator.PasswordPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithNameLength sets the length bounds used by NewNameField.
func WithNameLength(min, max int) Option {
	return func(c *config) {
		c.nameOpts = append(c.nameOpts, validator.WithNameLength(min, max))
	}
}

// WithRegion sets the default region used by NewMobileField.
func WithRegion(region string) Option {
	return func(c *config) {
		if region != "" {
			c.region = region
		}
	}
}
