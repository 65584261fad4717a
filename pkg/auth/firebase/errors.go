package firebase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/auth"
)

var (
	ErrAPIKeyRequired = errors.New("firebase: api key is required")
	ErrInvalidBaseURL = errors.New("firebase: invalid base url")
)

// ErrSessionChanged is returned by SignIn and SignUp when a sign-out or
// another sign-in finished while the call was in flight.
var ErrSessionChanged = auth.Unknown("Session changed while signing in")

// Backend error codes that have a dedicated auth kind.
const (
	CodeInvalidEmail            = "INVALID_EMAIL"
	CodeInvalidPassword         = "INVALID_PASSWORD"
	CodeEmailNotFound           = "EMAIL_NOT_FOUND"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeEmailExists             = "EMAIL_EXISTS"
	CodeWeakPassword            = "WEAK_PASSWORD"
	CodeInvalidLoginCredentials = "INVALID_LOGIN_CREDENTIALS"
)

const invalidCredentialsMessage = "Invalid login credentials provided"

// MapError converts a backend error message such as
// "WEAK_PASSWORD : Password should be at least 6 characters" to an *auth.Error.
func MapError(message string) *auth.Error {
	switch errorCode(message) {
	case CodeInvalidEmail:
		return auth.ErrInvalidEmail
	case CodeInvalidPassword:
		return auth.ErrWrongPassword
	case CodeEmailNotFound, CodeUserNotFound:
		return auth.ErrUserNotFound
	case CodeEmailExists:
		return auth.ErrEmailAlreadyInUse
	case CodeWeakPassword:
		return auth.ErrWeakPassword
	case CodeInvalidLoginCredentials:
		return auth.Unknown(invalidCredentialsMessage)
	default:
		return auth.Unknown(message)
	}
}

// errorCode returns the leading code of message, dropping any detail after it.
func errorCode(message string) string {
	code, _, _ := strings.Cut(strings.TrimSpace(message), " ")
	return strings.TrimSuffix(code, ":")
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(status int, body []byte) *auth.Error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error.Message != "" {
		return MapError(resp.Error.Message)
	}
	// Gateways and proxies answer with HTML when the service is unreachable.
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		return auth.ErrNetwork
	}
	return auth.Unknown(fmt.Sprintf("identity toolkit returned status %d", status))
}
