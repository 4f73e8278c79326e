package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExpiry(t *testing.T) {
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("token with exp claim", func(t *testing.T) {
		tok := signedToken(t, jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expires),
		})
		got := Expiry(tok)
		require.NotNil(t, got)
		assert.Equal(t, expires, *got)
	})

	t.Run("token without exp claim", func(t *testing.T) {
		tok := signedToken(t, jwt.RegisteredClaims{Subject: "user-1"})
		assert.Nil(t, Expiry(tok))
	})

	t.Run("opaque token", func(t *testing.T) {
		assert.Nil(t, Expiry("not-a-jwt-at-all"))
	})

	t.Run("empty token", func(t *testing.T) {
		assert.Nil(t, Expiry(""))
	})
}
