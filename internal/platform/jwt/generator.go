// Package jwtmw provides JWT issuance and verification for the HTTP layer.
package jwtmw

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email, provider string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret []byte
}

// NewGenerator creates a new JWT generator signing with the provided secret.
// The secret is loaded once at startup and passed in explicitly; it is never
// read from ambient environment state here.
func NewGenerator(secret string) Generator {
	return &generator{secret: []byte(secret)}
}

// GenerateToken creates a signed HS256 token carrying the user identity.
// The subject is the user ID rendered as a string. No expiry claim is set:
// a token stays valid until its signature fails, so logout has no
// server-side effect (accepted non-goal, no revocation list).
func (g *generator) GenerateToken(userID uint, email, provider string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"email": email,
		"iat":   time.Now().Unix(),
	}
	if provider != "" {
		claims["provider"] = provider
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
