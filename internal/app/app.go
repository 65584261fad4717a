package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/auth/firebase"
	"github.com/dmitrymomot/storefront/pkg/debounce"
	"github.com/dmitrymomot/storefront/pkg/email"
	"github.com/dmitrymomot/storefront/pkg/field"
	"github.com/dmitrymomot/storefront/pkg/form"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/messages"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
)

// ServiceName tags every log record.
const ServiceName = "storefront"

// Backend names reported by App.Backend.
const (
	BackendMemory   = "memory"
	BackendFirebase = "firebase"
)

type options struct {
	logOutput  io.Writer
	httpClient *http.Client
	clock      debounce.Clock
}

// Option configures New.
type Option func(*options)

// WithLogOutput sets where logs go when no log file is configured.
// The default is stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.logOutput = w
		}
	}
}

// WithHTTPClient sets the client used by the Firebase backend.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithClock sets the debounce clock of forms created by the app.
func WithClock(c debounce.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// App bundles the wired dependencies.
type App struct {
	Config   Config
	Logger   *slog.Logger
	Catalog  *messages.Catalog
	Client   auth.Client
	Observer *auth.Observer

	backend string
	clock   debounce.Clock
	closers []io.Closer
}

// New wires an App from cfg and starts observing the session.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg, clock: o.clock}

	out := o.logOutput
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		out = f
	}
	a.Logger = newLogger(cfg, out)

	locale := cfg.Locale
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	catalog, err := messages.New(ctx, messages.WithLanguage(locale), messages.WithLogger(a.Logger))
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load messages: %w", err)
	}
	a.Catalog = catalog

	if err := a.wireClient(o.httpClient); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Observer = auth.NewObserver(a.Client.Sessions(), auth.WithObserverLogger(a.Logger))
	a.Observer.Start(ctx)

	a.Logger.DebugContext(ctx, "app ready",
		logger.Backend(a.backend),
		slog.String("lang", catalog.Lang()),
	)
	return a, nil
}

func newLogger(cfg Config, out io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, ServiceName),
		logger.WithOutput(out),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return logger.New(opts...)
}

func (a *App) wireClient(httpClient *http.Client) error {
	cfg := a.Config
	if cfg.usesFirebase() {
		c, err := firebase.NewClient(firebase.Config{
			APIKey:       cfg.FirebaseAPIKey,
			EmulatorHost: cfg.FirebaseEmulatorHost,
			HTTPClient:   httpClient,
			Timeout:      cfg.FirebaseTimeout,
			Logger:       a.Logger,
		})
		if err != nil {
			return fmt.Errorf("firebase backend: %w", err)
		}
		a.Client, a.backend = c, BackendFirebase
		a.closers = append(a.closers, c)
		return nil
	}

	memOpts := []auth.MemoryOption{
		auth.WithLatency(cfg.AuthLatency),
		auth.WithLogger(a.Logger),
	}
	if cfg.AuthMaxAttempts > 0 {
		store := ratelimiter.NewMemoryStore()
		a.closers = append(a.closers, store)
		limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
			Capacity:       cfg.AuthMaxAttempts,
			RefillRate:     cfg.AuthMaxAttempts,
			RefillInterval: cfg.AuthLockout,
		})
		if err != nil {
			return fmt.Errorf("sign-in limiter: %w", err)
		}
		memOpts = append(memOpts, auth.WithSignInLimiter(limiter))
	}

	sender, err := newMailSender(cfg.Mail, httpClient)
	if err != nil {
		return err
	}
	if sender != nil {
		memOpts = append(memOpts, auth.WithResetSender(email.PasswordResetSender(sender, cfg.Mail.ResetURL)))
	}

	c := auth.NewMemoryClient(cfg.AuthSecret, memOpts...)
	a.Client, a.backend = c, BackendMemory
	a.closers = append(a.closers, c)
	return nil
}

// newMailSender returns nil when neither Postmark nor a dev directory is
// configured.
func newMailSender(cfg email.Config, httpClient *http.Client) (email.Sender, error) {
	switch {
	case cfg.UsesPostmark():
		s, err := email.NewPostmarkSender(cfg, email.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("mail: %w", err)
		}
		return s, nil
	case cfg.DevDir != "":
		return email.NewDevSender(cfg.DevDir), nil
	}
	return nil, nil
}

// Backend names the authentication backend in use.
func (a *App) Backend() string {
	return a.backend
}

// FieldOptions returns controller options reflecting the configuration.
func (a *App) FieldOptions() []field.Option {
	opts := []field.Option{
		field.WithDelay(a.Config.Debounce),
		field.WithLogger(a.Logger),
		field.WithCatalog(a.Catalog),
		field.WithPasswordPolicy(a.Config.PasswordPolicy()),
		field.WithNameLength(a.Config.NameMin, a.Config.NameMax),
		field.WithRegion(a.Config.PhoneRegion),
	}
	if a.clock != nil {
		opts = append(opts, field.WithClock(a.clock))
	}
	return opts
}

// NewForm creates a sign-in form bound to the app's backend.
func (a *App) NewForm(opts ...form.Option) *form.Form {
	base := []form.Option{
		form.WithLogger(a.Logger),
		form.WithCatalog(a.Catalog),
		form.WithFieldOptions(a.FieldOptions()...),
	}
	return form.New(a.Client, append(base, opts...)...)
}

// Close stops the observer, ends sessions and closes the log file.
func (a *App) Close() error {
	if a.Observer != nil {
		a.Observer.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
