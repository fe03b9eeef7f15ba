// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status            string  `json:"status"`
	DatasetLoaded     bool    `json:"dataset_loaded"`
	DatabaseConnected bool    `json:"database_connected"`
	WebSocketClients  int     `json:"websocket_clients"`
	Engines           int     `json:"engines"`
	Uptime            float64 `json:"uptime"`
}

// Health handles health check requests. The service is healthy when the
// dataset is loaded and the user store answers; otherwise it is degraded
// and answers 503.
//
// @Summary Get system health status
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Failure 503 {object} APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := HealthStatus{
		DatasetLoaded:     h.loader != nil && h.loader.Ready(),
		DatabaseConnected: h.db != nil && h.db.Ping(r.Context()) == nil,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.wsHub != nil {
		health.WebSocketClients = h.wsHub.GetClientCount()
	}
	if h.engines != nil {
		health.Engines = h.engines.Len()
	}

	status := http.StatusOK
	health.Status = "healthy"
	if !health.DatasetLoaded || !health.DatabaseConnected {
		health.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	rw := NewResponseWriter(w, r)
	rw.writeJSON(status, APIResponse{
		Success: status == http.StatusOK,
		Data:    health,
		Meta:    rw.meta(),
	})
}
