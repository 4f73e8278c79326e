// Package token inspects access tokens returned by the auth endpoint.
// Tokens are JWTs signed by the identity service; the CLI has no key to
// verify them, so claims are decoded unverified for display purposes only.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry decodes the exp claim of an access token. It returns nil when
// the token is not a parseable JWT or carries no expiry; the token is
// still usable as a bearer credential either way.
func Expiry(accessToken string) *time.Time {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	t := claims.ExpiresAt.Time.UTC()
	return &t
}
