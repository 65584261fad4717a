// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for parsing struct tags. Load caches each
// configuration type per prefix so repeated calls are served from memory;
// Parse always reads the environment.
//
//	type Config struct {
//		Env      string        `env:"ENV" envDefault:"development"`
//		Debounce time.Duration `env:"DEBOUNCE" envDefault:"300ms"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("STOREFRONT_")); err != nil {
//		return err
//	}
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be matched with
// errors.Is. ResetCache clears cached values between tests.
package config
