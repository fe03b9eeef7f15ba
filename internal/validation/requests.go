// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package validation

// LoginRequest is the body of POST /auth, from a form or JSON.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	// bcrypt ignores input beyond 72 bytes.
	Password string `json:"password" validate:"required,max=72"`
}

// FilterRequest changes the selection of one dimension. An empty Values
// list, or one containing "all", selects everything.
type FilterRequest struct {
	Dimension string   `json:"dimension" validate:"required,dimension"`
	Values    []string `json:"values" validate:"max=500,dive,max=128"`
}

// ViewRequest names a presenter output.
type ViewRequest struct {
	View string `json:"view" validate:"required,oneof=dashboard indicators"`
}
