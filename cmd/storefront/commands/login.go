package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/internal/app"
	"github.com/dmitrymomot/storefront/internal/tui"
	"github.com/dmitrymomot/storefront/pkg/form"
)

func loginCmd(opts *rootOptions) *cobra.Command {
	var signUp bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in or create an account",
		Long: "Opens the interactive sign-in screen. Without STOREFRONT_FIREBASE_API_KEY or " +
			"STOREFRONT_FIREBASE_EMULATOR_HOST accounts live in memory for this session only.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// The screen owns the terminal; logs go to STOREFRONT_LOG_FILE or nowhere.
			a, err := app.New(ctx, opts.cfg, app.WithLogOutput(io.Discard))
			if err != nil {
				return err
			}
			defer a.Close()

			mode := form.ModeSignIn
			if signUp {
				mode = form.ModeSignUp
			}
			f := a.NewForm(form.WithMode(mode))
			defer f.Close()

			return tui.Run(ctx, a.Client, f, a.Observer)
		},
	}

	cmd.Flags().BoolVar(&signUp, "sign-up", false, "start in account creation mode")
	return cmd
}
