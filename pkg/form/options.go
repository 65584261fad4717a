package form

import (
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/field"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/messages"
)

type config struct {
	mode      Mode
	log       *slog.Logger
	catalog   *messages.Catalog
	fieldOpts []field.Option
}

// Option configures a Form.
type Option func(*config)

// WithMode sets the initial mode. The default is ModeSignIn.
func WithMode(m Mode) Option {
	return func(c *config) {
		if m.valid() {
			c.mode = m
		}
	}
}

// WithLogger sets the logger for the form and its fields.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCatalog sets the catalog for field and authentication messages.
func WithCatalog(cat *messages.Catalog) Option {
	return func(c *config) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

// WithFieldOptions applies opts to every field controller of the form.
func WithFieldOptions(opts ...field.Option) Option {
	return func(c *config) {
		c.fieldOpts = append(c.fieldOpts, opts...)
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		mode: ModeSignIn,
		log:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.catalog == nil {
		cfg.catalog = messages.Default()
	}
	return cfg
}

func (c *config) controllerOptions() []field.Option {
	base := []field.Option{field.WithCatalog(c.catalog), field.WithLogger(c.log)}
	return append(base, c.fieldOpts...)
}
