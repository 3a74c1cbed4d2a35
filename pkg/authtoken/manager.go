// Package authtoken verifies the identity tokens minted by the upstream
// auth service. Only verification lives here; the forum never issues
// credentials or stores passwords.
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims carried by an identity token.
type Claims struct {
	ActorID   uint64 `json:"actor_id"`
	ActorName string `json:"actor_name"`
	jwt.RegisteredClaims
}

// Manager verifies HMAC-signed identity tokens.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager with the shared signing secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// VerifyToken parses and validates a token, returning its claims.
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueToken signs a short-lived identity token. Used by tests and local
// tooling; production tokens come from the auth service.
func (m *Manager) IssueToken(actorID uint64, actorName string, ttl time.Duration) (string, error) {
	claims := &Claims{
		ActorID:   actorID,
		ActorName: actorName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
