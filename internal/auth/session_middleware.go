// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/allocarte/internal/logging"
)

// DefaultCookieName is the name of the login cookie.
const DefaultCookieName = "allocarte_session"

// CookieConfig holds the attributes of the login cookie.
type CookieConfig struct {
	Name     string
	Path     string
	Secure   bool
	TTL      time.Duration
	SameSite http.SameSite
}

// DefaultCookieConfig returns an HttpOnly, SameSite=Lax cookie valid for
// 24 hours.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		Name:     DefaultCookieName,
		Path:     "/",
		TTL:      24 * time.Hour,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c CookieConfig) set(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     c.Path,
		MaxAge:   int(c.TTL.Seconds()),
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: c.SameSite,
	})
}

func (c CookieConfig) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     c.Path,
		MaxAge:   -1,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: c.SameSite,
	})
}

func (c CookieConfig) value(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SessionManager carries an authenticated subject between requests.
type SessionManager interface {
	// Start issues a new session for subject. Any session the request
	// already carries is discarded, so the identifier always changes on
	// login.
	Start(w http.ResponseWriter, r *http.Request, subject *AuthSubject) (*AuthSubject, error)

	// Resolve returns the subject of the request's session.
	Resolve(r *http.Request) (*AuthSubject, error)

	// End destroys the request's session and clears the cookie.
	End(w http.ResponseWriter, r *http.Request) error
}

// StoreSessions keeps sessions in a SessionStore behind an opaque cookie.
// Every resolved request slides the expiry forward.
type StoreSessions struct {
	store  SessionStore
	cookie CookieConfig
}

// NewStoreSessions creates a store-backed session manager.
func NewStoreSessions(store SessionStore, cookie CookieConfig) *StoreSessions {
	return &StoreSessions{store: store, cookie: cookie}
}

// Start implements SessionManager.
func (m *StoreSessions) Start(w http.ResponseWriter, r *http.Request, subject *AuthSubject) (*AuthSubject, error) {
	ctx := r.Context()
	if old := m.cookie.value(r); old != "" {
		//nolint:errcheck // best effort, the old ID is never reused
		m.store.Delete(ctx, old)
	}

	session, err := NewSession(subject, m.cookie.TTL)
	if err != nil {
		return nil, err
	}
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	m.cookie.set(w, session.ID)
	return session.ToAuthSubject(), nil
}

// Resolve implements SessionManager.
func (m *StoreSessions) Resolve(r *http.Request) (*AuthSubject, error) {
	id := m.cookie.value(r)
	if id == "" {
		return nil, ErrSessionNotFound
	}
	session, err := m.store.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}

	newExpiry := time.Now().Add(m.cookie.TTL)
	if err := m.store.Touch(r.Context(), id, newExpiry); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to touch session")
	} else {
		session.ExpiresAt = newExpiry
	}
	return session.ToAuthSubject(), nil
}

// End implements SessionManager.
func (m *StoreSessions) End(w http.ResponseWriter, r *http.Request) error {
	m.cookie.clear(w)
	id := m.cookie.value(r)
	if id == "" {
		return nil
	}
	return m.store.Delete(r.Context(), id)
}

// TokenSessions carries a signed JWT in the cookie. Nothing is stored
// server side except the IDs of logged out tokens.
type TokenSessions struct {
	tokens *JWTManager
	cookie CookieConfig
}

// NewTokenSessions creates a JWT-backed session manager.
func NewTokenSessions(tokens *JWTManager, cookie CookieConfig) *TokenSessions {
	return &TokenSessions{tokens: tokens, cookie: cookie}
}

// Start implements SessionManager.
func (m *TokenSessions) Start(w http.ResponseWriter, r *http.Request, subject *AuthSubject) (*AuthSubject, error) {
	if old := m.cookie.value(r); old != "" {
		if claims, err := m.tokens.ValidateToken(old); err == nil {
			m.tokens.Revoke(claims)
		}
	}

	token, claims, err := m.tokens.GenerateToken(subject)
	if err != nil {
		return nil, err
	}
	m.cookie.set(w, token)
	return claims.ToAuthSubject(), nil
}

// Resolve implements SessionManager.
func (m *TokenSessions) Resolve(r *http.Request) (*AuthSubject, error) {
	token := m.cookie.value(r)
	if token == "" {
		return nil, ErrSessionNotFound
	}
	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		return nil, errors.Join(ErrSessionNotFound, err)
	}
	return claims.ToAuthSubject(), nil
}

// End implements SessionManager.
func (m *TokenSessions) End(w http.ResponseWriter, r *http.Request) error {
	m.cookie.clear(w)
	if token := m.cookie.value(r); token != "" {
		if claims, err := m.tokens.ValidateToken(token); err == nil {
			m.tokens.Revoke(claims)
		}
	}
	return nil
}

// Authenticate attaches the session subject to the request context when
// the request carries a valid session. Requests without one continue
// anonymously; use RequireLogin on protected routes.
func Authenticate(m SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := m.Resolve(r)
			if err != nil {
				if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
					logging.Ctx(r.Context()).Error().Err(err).Msg("Session lookup error")
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAuthSubject(r.Context(), subject)))
		})
	}
}

// RequireLogin serves unauthorized for requests without a subject.
func RequireLogin(unauthorized http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetAuthSubject(r.Context()) == nil {
				unauthorized.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole serves unauthorized without a subject and forbidden when the
// subject lacks role.
func RequireRole(role string, unauthorized, forbidden http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := GetAuthSubject(r.Context())
			if subject == nil {
				unauthorized.ServeHTTP(w, r)
				return
			}
			if !subject.HasRole(role) {
				forbidden.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectTo is an unauthorized handler for pages.
func RedirectTo(path string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	})
}
