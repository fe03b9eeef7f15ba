// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, envOptions{loaded: true, rateLimit: true})

	for i := 0; i < RateLimitLogin.Requests; i++ {
		if rec := env.postForm("user", "wrong"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: status = %d", i+1, rec.Code)
		}
	}
	rec := env.postForm("user", "user1234")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if want := tooManyAttemptsText + retourLink; rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestRateLimitAPI(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, envOptions{loaded: true, rateLimit: true})
	cookies := env.login("user", "user1234")

	// RateLimitReqs is 3 in the test environment.
	for i := 0; i < 3; i++ {
		if rec := env.do(http.MethodGet, "/api/v1/filters", nil, "", cookies); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
	rec := env.do(http.MethodGet, "/api/v1/filters", nil, "", cookies)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("code = %s", resp.Error.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()
	m := NewChiMiddlewareFromSecurity(nil, 1, time.Minute, true)
	h := m.RateLimit()(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mw        func(http.Handler) http.Handler
		tls       bool
		wantCache string
		wantHSTS  bool
	}{
		{"api", APISecurityHeaders(), false, "no-store", false},
		{"page", PageSecurityHeaders(), false, "", false},
		{"api over tls", APISecurityHeaders(), true, "no-store", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			rec := httptest.NewRecorder()
			tt.mw(okHandler()).ServeHTTP(rec, req)

			h := rec.Header()
			if h.Get("X-Content-Type-Options") != "nosniff" || h.Get("X-Frame-Options") != "DENY" {
				t.Errorf("missing headers: %v", h)
			}
			if h.Get("Cache-Control") != tt.wantCache {
				t.Errorf("Cache-Control = %q, want %q", h.Get("Cache-Control"), tt.wantCache)
			}
			if (h.Get("Strict-Transport-Security") != "") != tt.wantHSTS {
				t.Errorf("HSTS = %q", h.Get("Strict-Transport-Security"))
			}
		})
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()
	m := NewChiMiddlewareFromSecurity([]string{"http://allowed.example"}, 100, time.Minute, false)
	h := m.CORS()(okHandler())

	tests := []struct {
		origin string
		want   string
	}{
		{"http://allowed.example", "http://allowed.example"},
		{"http://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/filters", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}
