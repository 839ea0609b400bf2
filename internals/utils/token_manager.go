package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers absent, malformed, tampered and expired bearer tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager mints and verifies the signed session credentials (HS256).
// Tokens are the sole authentication proof: the server keeps no session state
// and no revocation list, so validity is decided by the signature alone.
type TokenManager struct {
	// JWTSecret is the signing key. It must come from configuration; the
	// server refuses to start without one.
	JWTSecret string
}

func NewTokenManager(jwtSecret string) *TokenManager {
	return &TokenManager{JWTSecret: jwtSecret}
}

// Generate mints a token bound to the user's identity. A ttl of zero omits
// the expiry claim (the registration path); login passes a 24-hour ttl.
func (tm *TokenManager) Generate(userID uint, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"jti":   uuid.New().String(),
		"iat":   time.Now().Unix(),
	}
	if ttl > 0 {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.JWTSecret))
}

// Verify checks the signature, and the expiry when present, and returns the
// embedded user ID.
func (tm *TokenManager) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(tm.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(sub), nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
