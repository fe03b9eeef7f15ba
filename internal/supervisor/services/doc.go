// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package services adapts the server's long-running components to
// suture.Service.
//
// Each wrapper takes a small interface instead of the concrete type, so the
// package imports neither the api nor the websocket package:
//
//   - HTTPServerService: *http.Server, graceful shutdown on cancel
//   - WebSocketHubService: *websocket.Hub
//   - DatasetRebindService: *dataset.Loader reloads into *websocket.Hub
//   - CleanupService: session stores and the engine registry
package services
