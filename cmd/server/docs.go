// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package main provides the Allocarte HTTP server
//
// @title Allocarte API
// @version 1.0
// @description Dashboard of the key unemployment insurance indicators (allocataires, spending, average allowance)
// @description by region, department and month.
// @description
// @description ## Authentication
// @description
// @description Pages and API endpoints require a session cookie obtained from `POST /auth`.
// @description Sessions are per login: each one has its own filter selection.
// @description
// @description ## Rate Limiting
// @description
// @description Login: 5 attempts per 5 minutes per IP. API: 100 requests per minute per IP by default.
// @description
// @description ## Error Responses
// @description
// @description API errors use the envelope:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "NOT_READY", "message": "Dataset not loaded"},
// @description   "meta": {"timestamp": "2026-01-01T00:00:00Z", "request_id": "..."}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/allocarte/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name allocarte_session
// @description Session cookie set by POST /auth.
//
// @tag.name Core
// @tag.description Health and metrics
//
// @tag.name Auth
// @tag.description Login and logout
//
// @tag.name Pages
// @tag.description Login page and role dashboards
//
// @tag.name Filters
// @tag.description Per-session filter state and computed views
//
// @tag.name Dataset
// @tag.description Raw indicators and dataset information
//
// @tag.name Admin
// @tag.description Administrative operations (dataset reload)
//
// @tag.name Realtime
// @tag.description WebSocket live filter sessions
package main
