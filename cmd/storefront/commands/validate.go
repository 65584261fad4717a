package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/credentials"
	"github.com/dmitrymomot/storefront/pkg/messages"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// plain prints a fixed confirmation instead of the value.
type plain string

func (p plain) String() string { return string(p) }

// errInvalid makes the process exit non-zero after the message was printed.
var errInvalid = errors.New("invalid input")

func validateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a single value the way the sign-in form does",
	}

	var region string
	mobile := &cobra.Command{
		Use:   "mobile VALUE",
		Short: "Check a mobile number and print it in E.164 form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := region
			if r == "" {
				r = opts.cfg.PhoneRegion
			}
			return check(cmd, opts, args[0], func(raw string) (fmt.Stringer, error) {
				return credentials.NewMobileNumber(raw, validator.WithRegion(r))
			}, (*messages.Catalog).Mobile)
		},
	}
	mobile.Flags().StringVar(&region, "region", "", "default region for numbers without a country code (default $STOREFRONT_PHONE_REGION)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "email VALUE",
			Short: "Check an email address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return check(cmd, opts, args[0], func(raw string) (fmt.Stringer, error) {
					return credentials.NewEmailAddress(raw)
				}, (*messages.Catalog).Email)
			},
		},
		&cobra.Command{
			Use:   "name VALUE",
			Short: "Check a display name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return check(cmd, opts, args[0], func(raw string) (fmt.Stringer, error) {
					return credentials.NewName(raw, validator.WithNameLength(opts.cfg.NameMin, opts.cfg.NameMax))
				}, (*messages.Catalog).Name)
			},
		},
		&cobra.Command{
			Use:   "password VALUE",
			Short: "List the password requirements VALUE does not meet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return check(cmd, opts, args[0], func(raw string) (fmt.Stringer, error) {
					if _, err := credentials.NewPasswordWithPolicy(raw, opts.cfg.PasswordPolicy()); err != nil {
						return nil, err
					}
					return plain("ok"), nil
				}, (*messages.Catalog).Password)
			},
		},
		mobile,
	)
	return cmd
}

func check(cmd *cobra.Command, opts *rootOptions, raw string, parse func(string) (fmt.Stringer, error), describe func(*messages.Catalog, error) string) error {
	catalog, err := messages.New(cmd.Context(), messages.WithLanguage(opts.cfg.Locale))
	if err != nil {
		return err
	}

	v, err := parse(raw)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), describe(catalog, err))
		cmd.SilenceErrors = true
		return errInvalid
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.String())
	return nil
}
