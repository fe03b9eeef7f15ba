// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

/*
Package api serves the dashboard pages and the JSON API on a chi router.

# Pages

Pages keep the routes and messages of the original login flow:

	GET  /                  login page, or a redirect to /dashboard when logged in
	POST /auth              form or JSON login; failures answer 200 with a text
	                        message and a link back to /
	GET  /dashboard         the role's dashboard page (casbin decides which)
	GET  /dashboard.html    redirect to /dashboard
	GET  /indicateurs.html  complementary indicators page
	GET  /logout            ends the session, redirects to /

Every other path is a static file from the configured directory. The role
pages cannot be fetched by file name; those requests redirect to /dashboard.

# JSON API

Responses use one envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "..."}, "meta": {...}}

Each logged-in session owns an indicators engine, so the filter state
survives between requests:

	GET    /api/v1/filters               options and selection of every dimension
	POST   /api/v1/filters               {"dimension": "region", "values": ["Bretagne"]}
	DELETE /api/v1/filters               reset to "all" everywhere
	GET    /api/v1/views/{view}          dashboard or indicators output
	GET    /api/v1/dataset               loaded dataset information
	POST   /api/v1/admin/dataset/reload  reload the dataset (admin)

Every /api/v1 request is checked against the casbin policy with the
subject's role, the request path and the method.

# Operations

	GET /health      liveness and readiness summary
	GET /metrics     Prometheus metrics
	GET /swagger/*   OpenAPI documentation
	GET /ws          live filter session (see package websocket)
*/
package api
