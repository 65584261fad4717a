package auth

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/credentials"
)

// User is the signed-in account as reported by the backend.
type User struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
}

// LogValue keeps the email address out of logs.
func (u *User) LogValue() slog.Value {
	if u == nil {
		return slog.StringValue("<signed out>")
	}
	return slog.GroupValue(
		slog.String("uid", u.UID),
		slog.Bool("email_verified", u.EmailVerified),
	)
}

func (u *User) clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Client is the authentication collaborator used by the sign-in form.
// Every error returned is an *Error.
type Client interface {
	SignIn(ctx context.Context, email credentials.EmailAddress, password credentials.Password) (*User, error)
	SignUp(ctx context.Context, email credentials.EmailAddress, password credentials.Password, name credentials.Name) (*User, error)
	SignOut(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email credentials.EmailAddress) error
	// DeleteAccount removes the signed-in account and signs out. It does
	// nothing when no user is signed in.
	DeleteAccount(ctx context.Context) error

	// CurrentUser returns the signed-in user or nil.
	CurrentUser() *User
	// Sessions pushes the signed-in user (nil after sign-out) on every transition.
	Sessions() *SessionFeed
}
