// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package auth provides login, sessions and the authentication middleware
// for the dashboard pages and API.
package auth

import (
	"context"
	"errors"
)

// AuthMode is how an authenticated session is carried between requests.
type AuthMode string

const (
	// AuthModeSession stores sessions server side behind an opaque cookie.
	AuthModeSession AuthMode = "session"

	// AuthModeJWT carries a signed token in the cookie.
	AuthModeJWT AuthMode = "jwt"
)

// ParseAuthMode converts a string to AuthMode.
func ParseAuthMode(s string) (AuthMode, error) {
	switch s {
	case "session", "":
		return AuthModeSession, nil
	case "jwt":
		return AuthModeJWT, nil
	default:
		return "", errors.New("invalid auth mode: " + s)
	}
}

// String returns the string representation of AuthMode.
func (m AuthMode) String() string {
	return string(m)
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AuthSubject is the authenticated user attached to a request.
type AuthSubject struct {
	// ID is the stored user identifier.
	ID string `json:"id"`

	Username string `json:"username"`

	// Role is "admin" or "user".
	Role string `json:"role"`

	AuthMethod AuthMode `json:"auth_method"`

	// SessionID is the session or token identifier.
	SessionID string `json:"session_id,omitempty"`

	// ExpiresAt is a unix timestamp, 0 when unknown.
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// HasRole checks if the subject has a specific role.
func (s *AuthSubject) HasRole(role string) bool {
	return role != "" && s.Role == role
}

type contextKey string

// AuthSubjectContextKey is the context key for AuthSubject.
const AuthSubjectContextKey contextKey = "auth_subject"

// WithAuthSubject returns a context carrying subject.
func WithAuthSubject(ctx context.Context, subject *AuthSubject) context.Context {
	return context.WithValue(ctx, AuthSubjectContextKey, subject)
}

// GetAuthSubject returns the subject attached by Authenticate, or nil.
func GetAuthSubject(ctx context.Context) *AuthSubject {
	subject, ok := ctx.Value(AuthSubjectContextKey).(*AuthSubject)
	if !ok {
		return nil
	}
	return subject
}
