package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const subjectPasswordReset = "password_reset"

// resetClaims is the payload of a password reset token, an HS256 JWT.
type resetClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func newResetClaims(uid, email string, now time.Time, ttl time.Duration) resetClaims {
	return resetClaims{
		UID:   uid,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectPasswordReset,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func signResetToken(claims resetClaims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseResetToken verifies token at now. Errors are the jwt sentinels, so
// callers can tell jwt.ErrTokenExpired apart from everything else.
func parseResetToken(token string, secret []byte, now func() time.Time) (resetClaims, error) {
	var claims resetClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(subjectPasswordReset),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return resetClaims{}, err
	}
	return claims, nil
}
