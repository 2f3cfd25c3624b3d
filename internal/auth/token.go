package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig is passed in explicitly at construction. The signing secret is
// never read from ambient process state.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

// TokenManager issues and verifies the bearer credentials that yield a
// trusted member identifier.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	return &TokenManager{secret: cfg.Secret, ttl: cfg.TTL}
}

// Issue returns a signed token whose subject is the member id.
func (m *TokenManager) Issue(memberID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   memberID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the member id it carries.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
