package messages

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

//go:embed locales/*.yaml
var locales embed.FS

// Catalog turns validation and authentication errors into user-facing text
// in one language.
type Catalog struct {
	tr   *i18n.Translator
	lang string
}

type options struct {
	preferred []string
	log       *slog.Logger
}

// Option configures a Catalog.
type Option func(*options)

// WithLanguage sets the preferred languages, best first. Tags such as
// "es-MX" or POSIX locales such as "es_MX.UTF-8" are matched against the
// bundled catalogs. Unsupported languages fall back to English.
func WithLanguage(preferred ...string) Option {
	return func(o *options) {
		o.preferred = append(o.preferred, preferred...)
	}
}

// WithLogger logs missing translations to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// New loads the bundled catalogs.
func New(ctx context.Context, opts ...Option) (*Catalog, error) {
	o := &options{log: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
		i18n.WithDefaultLanguage(i18n.DefaultLanguage),
		i18n.WithLogger(o.log.With(logger.Component("messages"))),
		i18n.WithMissingTranslationsLogging(true),
	)
	if err != nil {
		return nil, err
	}

	return &Catalog{tr: tr, lang: tr.Lang(o.preferred...)}, nil
}

// MustNew is like New but panics if the bundled catalogs cannot be loaded.
func MustNew(ctx context.Context, opts ...Option) *Catalog {
	c, err := New(ctx, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns a shared English catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = MustNew(context.Background())
	})
	return defaultCatalog
}

// Lang returns the language the catalog renders.
func (c *Catalog) Lang() string {
	return c.lang
}

// SupportedLanguages lists the bundled catalogs.
func (c *Catalog) SupportedLanguages() []string {
	return c.tr.SupportedLanguages()
}

// text resolves key in the catalog language, then in the default language.
func (c *Catalog) text(key string, args ...string) string {
	lang := c.lang
	if !c.tr.HasTranslation(lang, key) {
		lang = c.tr.DefaultLanguage()
	}
	return c.tr.T(lang, key, args...)
}

func (c *Catalog) plural(key string, n int) string {
	lang := c.lang
	if !c.tr.HasTranslation(lang, key) {
		lang = c.tr.DefaultLanguage()
	}
	return c.tr.N(lang, key, n)
}

// Email describes an email validation failure. It returns "" for nil.
func (c *Catalog) Email(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, validator.ErrEmailEmpty):
		return c.text("validation.email.empty")
	default:
		return c.text("validation.email.invalid_format")
	}
}

// Name describes a name validation failure. It returns "" for nil.
func (c *Catalog) Name(err error) string {
	if err == nil {
		return ""
	}

	var nerr *validator.NameError
	if !errors.As(err, &nerr) {
		return c.text("validation.name.invalid_characters")
	}

	switch nerr.Kind {
	case validator.NameTooShort:
		return c.text("validation.name.too_short", "count", strconv.Itoa(nerr.Limit))
	case validator.NameTooLong:
		return c.text("validation.name.too_long", "count", strconv.Itoa(nerr.Limit))
	default:
		return c.text("validation.name.invalid_characters")
	}
}

// Mobile describes a mobile number validation failure. It returns "" for nil.
func (c *Catalog) Mobile(err error) string {
	if err == nil {
		return ""
	}
	return c.text("validation.mobile.invalid_format")
}

// Password lists every unmet requirement, one per line, in policy order.
// It returns "" for nil.
func (c *Catalog) Password(err error) string {
	if err == nil {
		return ""
	}

	var perr *validator.PasswordError
	if !errors.As(err, &perr) || len(perr.Failures) == 0 {
		return c.text("validation.password.invalid")
	}

	lines := make([]string, 0, len(perr.Failures))
	for _, r := range perr.Failures {
		lines = append(lines, c.Requirement(r))
	}
	return strings.Join(lines, "\n")
}

// Requirement describes a single password requirement.
func (c *Catalog) Requirement(r validator.Requirement) string {
	switch r.Kind {
	case validator.RequireMinLength, validator.RequireMaxLength,
		validator.RequireUppercase, validator.RequireLowercase,
		validator.RequireDigits, validator.RequireSpecialChars:
		return c.plural(r.TranslationKey(), r.Count)
	default:
		return c.text(r.TranslationKey())
	}
}

// Auth describes an authentication failure. Backend messages without a
// dedicated kind are returned verbatim. It returns "" for nil.
func (c *Catalog) Auth(err error) string {
	aerr := auth.AsError(err)
	if aerr == nil {
		return ""
	}

	key, ok := authKeys[aerr.Kind]
	if !ok {
		return aerr.Message
	}
	return c.text(key)
}

var authKeys = map[auth.Kind]string{
	auth.KindInvalidEmail:      "auth.invalid_email",
	auth.KindWrongPassword:     "auth.wrong_password",
	auth.KindUserNotFound:      "auth.user_not_found",
	auth.KindEmailAlreadyInUse: "auth.email_already_in_use",
	auth.KindWeakPassword:      "auth.weak_password",
	auth.KindNetwork:           "auth.network_error",
}

// PasswordResetSent is shown after a reset link was sent.
func (c *Catalog) PasswordResetSent() string {
	return c.text("auth.password_reset_sent")
}

// Describe picks the right table for err: validation errors by their type,
// everything else as an authentication failure.
func (c *Catalog) Describe(err error) string {
	var (
		nerr *validator.NameError
		perr *validator.PasswordError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, validator.ErrEmailEmpty), errors.Is(err, validator.ErrEmailInvalidFormat):
		return c.Email(err)
	case errors.Is(err, validator.ErrMobileInvalidFormat):
		return c.Mobile(err)
	case errors.As(err, &nerr):
		return c.Name(err)
	case errors.As(err, &perr):
		return c.Password(err)
	default:
		return c.Auth(err)
	}
}
