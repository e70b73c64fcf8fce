package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"foodfreaky/globals"
	"foodfreaky/middleware"
	"foodfreaky/models"
	"foodfreaky/rdx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	sessionTTL  = 12 * time.Hour
	otpTTL      = 10 * time.Minute
	resetTTL    = 30 * time.Minute
	tokenHashes = "tokki" // redis hash of active session tokens per user
)

func issueToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		Name:   user.Name,
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		return "", err
	}

	if err := rdx.RdxHset(tokenHashes, user.UserID, hashToken(tokenString)); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}
	return tokenString, nil
}

// SessionActive reports whether the token is the user's current session,
// i.e. it was issued by login and not yet revoked by logout. Redis is a
// cache, not a system of record, so an unreachable server does not lock
// everyone out; only an explicit miss counts as logged out.
func SessionActive(userID, tokenString string) bool {
	stored, err := rdx.RdxHget(tokenHashes, userID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false
		}
		log.Printf("Redis session lookup failed for %s: %v", userID, err)
		return true
	}
	return stored == hashToken(strings.TrimPrefix(tokenString, "Bearer "))
}

// generateSecureToken returns a random hex token for password resets.
func generateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashToken stores only digests of tokens, never the tokens themselves.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
