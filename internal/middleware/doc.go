// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

/*
Package middleware provides the HTTP middleware shared by every route.

Key Components:

  - RequestID: UUID-based request tracking, wired into the logging context
  - PrometheusMetrics: request count, duration and in-flight gauge, labeled
    by chi route pattern
  - RequestLogger: one structured log line per finished request

All three are func(http.Handler) http.Handler and can be passed straight to
chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)

Route patterns are used as the metrics endpoint label, so /api/v1/views/dashboard
and /api/v1/views/indicators share the series for /api/v1/views/{view}.
Requests no route matched are recorded under "unmatched" to keep label
cardinality bounded.
*/
package middleware
