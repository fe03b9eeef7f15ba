// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/allocarte/internal/auth"
)

func TestMiddleware_AuthorizeRequest(t *testing.T) {
	t.Parallel()

	m := NewMiddleware(setupEnforcer(t, nil))
	handler := m.AuthorizeRequest(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		subject *auth.AuthSubject
		method  string
		path    string
		want    int
	}{
		{"anonymous", nil, http.MethodPost, "/api/v1/admin/dataset/reload", http.StatusUnauthorized},
		{"user reload", &auth.AuthSubject{Username: "user", Role: auth.RoleUser}, http.MethodPost, "/api/v1/admin/dataset/reload", http.StatusForbidden},
		{"admin reload", &auth.AuthSubject{Username: "admin", Role: auth.RoleAdmin}, http.MethodPost, "/api/v1/admin/dataset/reload", http.StatusNoContent},
		{"user filters", &auth.AuthSubject{Username: "user", Role: auth.RoleUser}, http.MethodPost, "/api/v1/filters", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.subject != nil {
				req = req.WithContext(auth.WithAuthSubject(req.Context(), tt.subject))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
