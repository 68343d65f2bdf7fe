package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("credential is not a JWT")

// TokenInfo is what the console can learn from a credential without the
// relay's signing key. It is informational only.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect decodes the credential's claims without verifying its signature.
// The relay stays the authority on validity; callers use this for display.
func Inspect(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrNotJWT
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
