// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// tokenIssuer is the iss claim on owner tokens.
const tokenIssuer = "quickly-survey"

// IssueOwnerToken signs an HS256 token whose subject is the owner id.
func IssueOwnerToken(ownerID, secret string, ttl time.Duration) (string, error) {
	if ownerID == "" {
		return "", errors.New("owner id required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   ownerID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign owner token: %w", err)
	}
	return signed, nil
}

// ParseOwnerToken verifies signature, algorithm and expiry and returns the
// owner id.
func ParseOwnerToken(raw, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

// GenerateShareToken creates a random URL-safe token for a share link.
func GenerateShareToken() (string, error) {
	b := make([]byte, 24) // 192 bits
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
