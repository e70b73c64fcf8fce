package middleware

import (
	"testing"
	"time"

	"foodfreaky/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret []byte, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		Name:   "Asha",
		UserID: "user-1",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestValidateJWT(t *testing.T) {
	prev := globals.JwtSecret
	globals.JwtSecret = []byte("test-secret")
	t.Cleanup(func() { globals.JwtSecret = prev })

	valid := signTestToken(t, globals.JwtSecret, time.Now().Add(time.Hour))

	t.Run("bare token", func(t *testing.T) {
		claims, err := ValidateJWT(valid)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("bearer prefix stripped", func(t *testing.T) {
		claims, err := ValidateJWT("Bearer " + valid)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ValidateJWT("")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateJWT("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := signTestToken(t, globals.JwtSecret, time.Now().Add(-time.Hour))
		_, err := ValidateJWT(expired)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged := signTestToken(t, []byte("other-secret"), time.Now().Add(time.Hour))
		_, err := ValidateJWT(forged)
		assert.Error(t, err)
	})
}
