package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/internal/app"
	"github.com/dmitrymomot/storefront/pkg/config"
)

type rootOptions struct {
	envFiles []string
	locale   string
	cfg      app.Config
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront account tools",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(opts.envFiles) > 0 {
				if err := config.LoadEnv(opts.envFiles...); err != nil {
					return err
				}
			}
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if opts.locale != "" {
				cfg.Locale = opts.locale
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "load variables from .env files before reading the environment")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "message language, e.g. en or es (default $STOREFRONT_LOCALE or $LANG)")

	root.AddCommand(loginCmd(opts), validateCmd(opts))
	return root
}
