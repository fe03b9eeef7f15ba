// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenRevoked is returned for a token that was logged out.
var ErrTokenRevoked = errors.New("token revoked")

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ToAuthSubject converts validated claims to the request subject.
func (c *Claims) ToAuthSubject() *AuthSubject {
	subject := &AuthSubject{
		ID:         c.Subject,
		Username:   c.Username,
		Role:       c.Role,
		AuthMethod: AuthModeJWT,
		SessionID:  c.ID,
	}
	if subject.ID == "" {
		subject.ID = c.Username
	}
	if c.ExpiresAt != nil {
		subject.ExpiresAt = c.ExpiresAt.Unix()
	}
	return subject
}

// JWTManager handles JWT token creation and validation. Tokens are HS256
// signed and carry a unique ID so logout can revoke them before expiry.
type JWTManager struct {
	secret  []byte
	timeout time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewJWTManager creates a token manager. The secret must be non-empty;
// length and placeholder checks belong to configuration validation.
func NewJWTManager(secret string, timeout time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	return &JWTManager{
		secret:  []byte(secret),
		timeout: timeout,
		revoked: make(map[string]time.Time),
	}, nil
}

// GenerateToken creates a signed token for subject, valid for the
// configured session timeout.
func (m *JWTManager) GenerateToken(subject *AuthSubject) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Username: subject.Username,
		Role:     subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken checks signature, algorithm, time claims and revocation.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if m.isRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke rejects the token with claims until it would have expired anyway.
func (m *JWTManager) Revoke(claims *Claims) {
	if claims == nil || claims.ID == "" {
		return
	}
	expiry := time.Now().Add(m.timeout)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[claims.ID] = expiry
	m.pruneLocked()
}

func (m *JWTManager) isRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok
}

func (m *JWTManager) pruneLocked() {
	now := time.Now()
	for id, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, id)
		}
	}
}
