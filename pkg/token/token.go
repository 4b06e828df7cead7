// Package token issues and verifies the self-contained bearer tokens used
// by the auth gate. Tokens are HS256 JWTs; compromise is bounded only by
// expiry, there is no revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried inside a bearer token.
type Claims struct {
	UserID  string
	IsAdmin bool
}

// Manager signs and parses bearer tokens with a single shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token for the given identity.
func (m *Manager) Sign(userID string, isAdmin bool) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     userID,
		"isAdmin": isAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	})
	return t.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token has no subject")
	}
	isAdmin, _ := claims["isAdmin"].(bool)

	return &Claims{UserID: sub, IsAdmin: isAdmin}, nil
}
