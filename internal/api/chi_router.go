// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/authz"
	"github.com/tomtom215/allocarte/internal/middleware"
)

// Router wires the handlers, the session layer and the authorization
// policy onto a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authz         *authz.Middleware
}

// NewRouter creates a router. The API answers authorization failures with
// the JSON envelope.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}

	var authzMw *authz.Middleware
	if handler.enforcer != nil {
		authzMw = authz.NewMiddleware(handler.enforcer)
		authzMw.Unauthorized = http.HandlerFunc(unauthorizedJSON)
		authzMw.Forbidden = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).Forbidden("Insufficient permissions")
		})
		authzMw.Failure = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).InternalError("Authorization error")
		})
	}

	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		authz:         authzMw,
	}
}

func unauthorizedJSON(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Unauthorized("Authentication required")
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.PrometheusMetrics)
	r.Use(auth.Authenticate(h.sessions))

	// ========================
	// Health & Observability
	// ========================
	r.With(router.chiMiddleware.RateLimitHealth(), APISecurityHeaders()).Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// Pages
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(PageSecurityHeaders())

		r.Get("/", h.LoginPage)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/auth", h.Login)
		r.Get("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireLogin(auth.RedirectTo("/")))
			r.Get("/dashboard", h.Dashboard)
			r.Get("/dashboard.html", h.DashboardRedirect)
			r.Get("/indicateurs.html", h.Indicators)
		})

		r.Get("/evolution_indicateurs_cles_ac.json", h.RawDataset)
	})

	// ========================
	// JSON API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(auth.RequireLogin(http.HandlerFunc(unauthorizedJSON)))
		if router.authz != nil {
			r.Use(router.authz.AuthorizeRequest)
		}

		r.Get("/filters", h.GetFilters)
		r.Post("/filters", h.SetFilter)
		r.Delete("/filters", h.ResetFilters)
		r.Get("/views/{view}", h.GetView)
		r.Get("/dataset", h.GetDataset)
		r.Post("/admin/dataset/reload", h.ReloadDataset)
	})

	r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/ws", h.WebSocket)

	// ========================
	// Static Files
	// ========================
	// Must be last - catches all unmatched routes
	r.Group(func(r chi.Router) {
		r.Use(PageSecurityHeaders())
		r.Handle("/*", h.Static())
	})

	return r
}
