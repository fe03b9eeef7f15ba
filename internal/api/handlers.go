// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/authz"
	"github.com/tomtom215/allocarte/internal/config"
	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
	ws "github.com/tomtom215/allocarte/internal/websocket"
)

// DatasetLoader owns the current dataset.
type DatasetLoader interface {
	DatasetProvider
	Ready() bool
	Raw() []byte
	LoadedAt() time.Time
	Source() string
	Load(ctx context.Context) error
}

// LoginChecker verifies credentials.
type LoginChecker interface {
	Login(ctx context.Context, username, password string) (*auth.AuthSubject, error)
}

// Pinger checks the user store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandlerDeps are the collaborators of the handlers. DB and Hub may be nil.
type HandlerDeps struct {
	Config   *config.Config
	DB       Pinger
	Login    LoginChecker
	Sessions auth.SessionManager
	Enforcer *authz.Enforcer
	Loader   DatasetLoader
	Engines  *EngineRegistry
	Hub      *ws.Hub
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, shared helpers (this file)
//   - handlers_pages.go: login flow, dashboard pages, static files
//   - handlers_filters.go: per-session filter state and views
//   - handlers_dataset.go: raw dataset, dataset info, reload
//   - handlers_health.go: health endpoint
//   - handlers_websocket.go: live filter sessions
type Handler struct {
	config    *config.Config
	db        Pinger
	login     LoginChecker
	sessions  auth.SessionManager
	enforcer  *authz.Enforcer
	loader    DatasetLoader
	engines   *EngineRegistry
	wsHub     *ws.Hub
	staticDir string
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDeps) *Handler {
	staticDir := "public"
	if deps.Config != nil && deps.Config.Web.StaticDir != "" {
		staticDir = deps.Config.Web.StaticDir
	}
	return &Handler{
		config:    deps.Config,
		db:        deps.DB,
		login:     deps.Login,
		sessions:  deps.Sessions,
		enforcer:  deps.Enforcer,
		loader:    deps.Loader,
		engines:   deps.Engines,
		wsHub:     deps.Hub,
		staticDir: staticDir,
		startTime: time.Now(),
	}
}

// sessionEngine returns the engine of the request's session. It answers
// the request itself and returns nil when there is none.
func (h *Handler) sessionEngine(w http.ResponseWriter, r *http.Request) *indicators.Engine {
	subject := auth.GetAuthSubject(r.Context())
	if subject == nil || subject.SessionID == "" {
		NewResponseWriter(w, r).Unauthorized(ErrNoSession.Error())
		return nil
	}
	engine, err := h.engines.Get(subject.SessionID)
	if err != nil {
		writeEngineError(w, r, err)
		return nil
	}
	return engine
}

// writeEngineError maps engine errors to API errors.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, indicators.ErrNotReady):
		rw.ServiceUnavailable("Dataset not loaded")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Filter engine error")
		rw.InternalError("Filter engine error")
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and timeouts.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts same-host origins and configured CORS
// origins. Browsers always send Origin on websocket requests, so a missing
// header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Ctx(r.Context()).Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}
	if h.config != nil {
		for _, allowed := range h.config.Security.CORSOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
	}

	logging.Ctx(r.Context()).Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// sanitizeLogValue strips control characters and bounds the length of
// client-supplied values before they reach the logs.
func sanitizeLogValue(s string) string {
	const maxLen = 200
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c < 0x20 || c == 0x7f {
			continue
		}
		out = append(out, c)
		if len(out) == maxLen {
			break
		}
	}
	return string(out)
}
