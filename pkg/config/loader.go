package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	prefix      string
	environment map[string]string
}

// Option configures parsing.
type Option func(*options)

// WithPrefix prepends prefix to every env tag, so `env:"LOG_LEVEL"` with
// prefix "STOREFRONT_" reads STOREFRONT_LOG_LEVEL.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment parses from vars instead of the process environment.
// Results parsed this way are never cached.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = vars
	}
}

type configCache struct {
	mu     sync.Mutex
	values map[string]any
}

var (
	cache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

// LoadEnv loads .env files into the process environment. Variables already
// set are not overridden. With no paths it loads ./.env.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// Parse reads the environment into a new T without touching the cache.
func Parse[T any](opts ...Option) (T, error) {
	var (
		v T
		o options
	)
	for _, opt := range opts {
		opt(&o)
	}

	if err := env.ParseWithOptions(&v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// Load parses the environment into v. The default .env file is read once if
// present. Each configuration type and prefix is parsed once; later calls
// return the cached copy.
//
//	type Config struct {
//		LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
//		Debounce time.Duration `env:"DEBOUNCE" envDefault:"300ms"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.WithPrefix("STOREFRONT_"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.environment != nil {
		parsed, err := Parse[T](opts...)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	}

	key := typeName[T]() + "|" + o.prefix

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	parsed, err := Parse[T](opts...)
	if err != nil {
		return err
	}
	cache.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	clear(cache.values)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
