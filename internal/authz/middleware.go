// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package authz

import (
	"net/http"

	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/logging"
)

// Middleware enforces the policy on request paths.
type Middleware struct {
	enforcer *Enforcer

	// Denial handlers. NewMiddleware sets plain-text defaults.
	Forbidden    http.Handler
	Unauthorized http.Handler
	Failure      http.Handler
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{
		enforcer: enforcer,
		Forbidden: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		}),
		Unauthorized: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}),
		Failure: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}),
	}
}

// AuthorizeRequest authorizes the subject's role for the request path and
// HTTP method.
func (m *Middleware) AuthorizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := auth.GetAuthSubject(r.Context())
		if subject == nil {
			m.Unauthorized.ServeHTTP(w, r)
			return
		}

		allowed, err := m.enforcer.Enforce(subject.Role, r.URL.Path, r.Method)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			m.Failure.ServeHTTP(w, r)
			return
		}
		if !allowed {
			logging.Ctx(r.Context()).Warn().
				Str("username", subject.Username).
				Str("role", subject.Role).
				Str("path", r.URL.Path).
				Msg("Authorization denied")
			m.Forbidden.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
