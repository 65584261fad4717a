package messages_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/messages"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestCatalog_FieldMessages(t *testing.T) {
	t.Parallel()

	cat := messages.Default()
	require.Equal(t, "en", cat.Lang())

	t.Run("email", func(t *testing.T) {
		t.Parallel()
		_, err := validator.ValidateEmail("   ")
		assert.Equal(t, "Email address is empty", cat.Email(err))

		_, err = validator.ValidateEmail("jane@")
		assert.Equal(t, "Invalid email address", cat.Email(err))

		assert.Empty(t, cat.Email(nil))
	})

	t.Run("name", func(t *testing.T) {
		t.Parallel()
		_, err := validator.ValidateName("Al")
		assert.Equal(t, "Name should be at least 3 characters long", cat.Name(err))

		_, err = validator.ValidateName("Alexander", validator.WithNameLength(3, 7))
		assert.Equal(t, "Name should not be longer than 7 characters", cat.Name(err))

		_, err = validator.ValidateName("J0hn")
		assert.Equal(t, "Name contains invalid characters", cat.Name(err))
	})

	t.Run("mobile", func(t *testing.T) {
		t.Parallel()
		_, err := validator.ValidateMobileNumber("12345")
		assert.Equal(t, "Mobile number is invalid", cat.Mobile(err))
	})

	t.Run("password lists every unmet requirement", func(t *testing.T) {
		t.Parallel()
		policy := validator.PasswordPolicy{Requirements: []validator.Requirement{
			validator.MinLength(8),
			validator.MinUppercase(1),
			validator.MinDigits(2),
			validator.NoSpaces(),
		}}
		_, err := validator.ValidatePassword("pass 1", policy)
		require.Error(t, err)

		want := "Password must be at least 8 characters long\n" +
			"Password must contain at least 1 uppercase letter\n" +
			"Password must contain at least 2 digits\n" +
			"Password must not contain spaces"
		assert.Equal(t, want, cat.Password(err))
	})

	t.Run("password with unrelated error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Password is invalid", cat.Password(errors.New("boom")))
		assert.Empty(t, cat.Password(nil))
	})
}

func TestCatalog_Auth(t *testing.T) {
	t.Parallel()

	cat := messages.Default()

	tests := []struct {
		err  error
		want string
	}{
		{auth.ErrInvalidEmail, "Invalid email address"},
		{auth.ErrWrongPassword, "Incorrect password"},
		{auth.ErrUserNotFound, "No account found with this email"},
		{auth.ErrEmailAlreadyInUse, "Email address is already in use"},
		{auth.ErrWeakPassword, "Password is too weak"},
		{auth.ErrNetwork, "Network error occurred"},
		{auth.Unknown("Invalid login credentials provided"), "Invalid login credentials provided"},
		{errors.New("quota exceeded"), "quota exceeded"},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cat.Auth(tt.err))
	}

	assert.Contains(t, cat.PasswordResetSent(), "Password reset link has been sent")
}

func TestCatalog_Describe(t *testing.T) {
	t.Parallel()

	cat := messages.Default()

	_, emailErr := validator.ValidateEmail("")
	_, nameErr := validator.ValidateName("Al")
	_, mobileErr := validator.ValidateMobileNumber("abc")
	_, passErr := validator.ValidatePassword("Passw0rd", validator.DefaultPasswordPolicy())

	assert.Equal(t, "Email address is empty", cat.Describe(emailErr))
	assert.Equal(t, "Name should be at least 3 characters long", cat.Describe(nameErr))
	assert.Equal(t, "Mobile number is invalid", cat.Describe(mobileErr))
	assert.Equal(t, "Password must contain at least 1 special character", cat.Describe(passErr))
	assert.Equal(t, "Incorrect password", cat.Describe(auth.ErrWrongPassword))
	assert.Empty(t, cat.Describe(nil))
}

func TestCatalog_Language(t *testing.T) {
	t.Parallel()

	t.Run("regional tag matches bundled language", func(t *testing.T) {
		t.Parallel()
		cat, err := messages.New(context.Background(), messages.WithLanguage("es-MX"))
		require.NoError(t, err)
		assert.Equal(t, "es", cat.Lang())
		assert.Equal(t, "Contraseña incorrecta", cat.Auth(auth.ErrWrongPassword))
		assert.Equal(t, "El nombre debe tener al menos 3 caracteres", cat.Name(&validator.NameError{Kind: validator.NameTooShort, Limit: 3}))
	})

	t.Run("posix locale", func(t *testing.T) {
		t.Parallel()
		cat, err := messages.New(context.Background(), messages.WithLanguage("es_ES.UTF-8"))
		require.NoError(t, err)
		assert.Equal(t, "es", cat.Lang())
	})

	t.Run("missing key falls back to english", func(t *testing.T) {
		t.Parallel()
		cat, err := messages.New(context.Background(), messages.WithLanguage("es"))
		require.NoError(t, err)
		assert.Equal(t, "Password is invalid", cat.Password(errors.New("boom")))
	})

	t.Run("unsupported language uses english", func(t *testing.T) {
		t.Parallel()
		cat, err := messages.New(context.Background(), messages.WithLanguage("ja-JP"))
		require.NoError(t, err)
		assert.Equal(t, "en", cat.Lang())
		assert.ElementsMatch(t, []string{"en", "es"}, cat.SupportedLanguages())
	})
}
