package email

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

const (
	tagPasswordReset     = "password-reset"
	subjectPasswordReset = "Reset your password"
)

// Render renders a templ component to a string.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// PasswordReset renders the body of a password reset email.
func PasswordReset(email, link string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html><body>
<p>Someone asked to reset the password for %s.</p>
<p><a href="%s">Choose a new password</a></p>
<p>If it was not you, ignore this email.</p>
</body></html>
`, templ.EscapeString(email), templ.EscapeString(link))
		return err
	})
}

// ResetLink appends token to base as the token query parameter.
func ResetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: reset url: %w", ErrInvalidConfig, err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// PasswordResetSender returns a function that mails reset tokens through
// sender. It matches the reset sender hook of the in-memory auth backend.
func PasswordResetSender(sender Sender, resetURL string) func(ctx context.Context, to, token string) error {
	return func(ctx context.Context, to, token string) error {
		link, err := ResetLink(resetURL, token)
		if err != nil {
			return err
		}
		body, err := Render(ctx, PasswordReset(to, link))
		if err != nil {
			return fmt.Errorf("%w: render: %w", ErrFailedToSendEmail, err)
		}
		return sender.SendEmail(ctx, Message{
			To:       to,
			Subject:  subjectPasswordReset,
			BodyHTML: body,
			Tag:      tagPasswordReset,
		})
	}
}
