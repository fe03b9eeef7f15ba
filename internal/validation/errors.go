// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package validation

import "strings"

// ValidationError is one failed field rule.
type ValidationError struct {
	field   string
	tag     string
	message string
}

// Field returns the json name of the failed field.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the failed rule, e.g. "required" or "max".
func (e *ValidationError) Tag() string { return e.tag }

func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects the failed rules of one request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the failed rules in struct order.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// HasTag reports whether any field failed tag.
func (ve *RequestValidationError) HasTag(tag string) bool {
	for _, e := range ve.errors {
		if e.tag == tag {
			return true
		}
	}
	return false
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve.errors))
	for i := range ve.errors {
		parts[i] = ve.errors[i].message
	}
	return strings.Join(parts, "; ")
}

// APIError is the error body shape the API responds with. It lives here
// so the api package can depend on validation and not the reverse.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failures to a VALIDATION_ERROR body. A single
// failure reports its field and tag; several are listed under "fields".
func (ve *RequestValidationError) ToAPIError() *APIError {
	const code = "VALIDATION_ERROR"

	switch len(ve.errors) {
	case 0:
		return &APIError{Code: code, Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    code,
			Message: e.message,
			Details: map[string]interface{}{"field": e.field, "tag": e.tag},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	messages := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{"field": e.field, "tag": e.tag, "message": e.message}
		messages[i] = e.field + ": " + e.message
	}
	return &APIError{
		Code:    code,
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}
