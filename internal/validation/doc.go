// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package validation validates request bodies with go-playground/validator v10.
//
// A single validator instance is shared by all callers. Field names in
// messages are the json names, so errors read the way clients wrote the
// request.
//
// # Usage
//
//	var req validation.FilterRequest
//	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	    // handle decode error
//	}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
//	    return
//	}
//
// # Custom Validators
//
// The "dimension" tag accepts the filter dimensions known to the
// indicators engine: region, departement, year and month.
package validation
