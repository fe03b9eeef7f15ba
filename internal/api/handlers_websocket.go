// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"net/http"

	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
	ws "github.com/tomtom215/allocarte/internal/websocket"
)

// WebSocket upgrades to a live filter session. Each connection owns its
// engine; the hub rebinds it when the dataset is reloaded.
//
// @Summary Live filter session
// @Description Client frames: filter, reset, ping. Server frames: state, pong, error.
// @Tags Realtime
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse "WebSocket hub not available"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	subject := auth.GetAuthSubject(r.Context())
	if subject == nil {
		NewResponseWriter(w, r).Unauthorized("Authentication required")
		return
	}
	if h.wsHub == nil {
		logging.Ctx(r.Context()).Warn().Msg("WebSocket connection rejected: hub not initialized")
		NewResponseWriter(w, r).ServiceUnavailable("WebSocket service unavailable")
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	engine := indicators.NewEngine()
	if h.loader != nil {
		engine.Bind(h.loader.Dataset())
	}

	client := ws.NewClient(h.wsHub, conn, engine, subject.Username)
	h.wsHub.Register <- client
	client.Start()
}
