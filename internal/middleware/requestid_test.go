// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/allocarte/internal/logging"
)

func captureRequestID(t *testing.T, header string) (ctxID, logID, correlationID, responseID string) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
		logID = logging.RequestIDFromContext(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return ctxID, logID, correlationID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	ctxID, logID, correlationID, responseID := captureRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("response X-Request-ID is not a valid UUID: %v", err)
	}
	if ctxID != responseID || logID != responseID {
		t.Errorf("context IDs (%s, %s) don't match response header %s", ctxID, logID, responseID)
	}
	if correlationID == "" {
		t.Error("expected a correlation ID in the logging context")
	}
}

func TestRequestID_PreservesUpstreamID(t *testing.T) {
	ctxID, _, _, responseID := captureRequestID(t, "proxy-1234")
	if ctxID != "proxy-1234" || responseID != "proxy-1234" {
		t.Errorf("got ctx %q, response %q, want proxy-1234", ctxID, responseID)
	}
}

func TestRequestID_ReplacesOversizedID(t *testing.T) {
	long := strings.Repeat("x", maxRequestIDLength+1)
	_, _, _, responseID := captureRequestID(t, long)
	if responseID == long {
		t.Error("oversized upstream ID should be replaced")
	}
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("replacement is not a UUID: %v", err)
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		_, _, _, id := captureRequestID(t, "")
		if seen[id] {
			t.Fatalf("duplicate request ID %s", id)
		}
		seen[id] = true
	}
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"with id", context.WithValue(context.Background(), RequestIDKey, "abc"), "abc"},
		{"without id", context.Background(), ""},
		{"wrong type", context.WithValue(context.Background(), RequestIDKey, 42), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetRequestID(tt.ctx); got != tt.want {
				t.Errorf("GetRequestID() = %q, want %q", got, tt.want)
			}
		})
	}
}
