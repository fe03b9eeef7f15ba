// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeFilter = "filter"
	MessageTypeReset  = "reset"
	MessageTypePing   = "ping"
	MessageTypePong   = "pong"
	MessageTypeState  = "state"
	MessageTypeError  = "error"
)

// Message represents an outbound WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// inboundMessage is a client frame before its data is decoded.
type inboundMessage struct {
	Type string          `json:"type" validate:"required,oneof=filter reset ping"`
	Data json.RawMessage `json:"data,omitempty"`
}

// StateData is the payload of a state message.
type StateData struct {
	Filters []indicators.FilterView `json:"filters"`
	Outputs map[string]any          `json:"outputs"`
	Ready   bool                    `json:"ready"`
}

// ErrorData is the payload of an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Hub maintains the set of active clients and rebinds their engines on
// dataset reloads.
type Hub struct {
	clients    map[*Client]bool
	rebind     chan *indicators.Dataset
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		rebind:     make(chan *indicators.Dataset, 1),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext runs the hub until ctx is done, then closes every client.
//
// Client lifecycle events are handled before rebinds so a client that
// registered just before a reload is rebound too.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case d := <-h.rebind:
			h.rebindClients(d)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Info().Int("total_clients", total).Str("username", client.username).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		client.close()
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.WSConnections.Dec()
		logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
	}
}

// Rebind queues d for every connected client. A queued dataset that has
// not been applied yet is replaced, so only the newest one is bound.
func (h *Hub) Rebind(d *indicators.Dataset) {
	if d == nil {
		return
	}
	for {
		select {
		case h.rebind <- d:
			return
		default:
		}
		select {
		case <-h.rebind:
		default:
		}
	}
}

// rebindClients binds d to every client engine in ID order and pushes the
// new state.
func (h *Hub) rebindClients(d *indicators.Dataset) {
	clients := h.sortedClients()
	for _, client := range clients {
		client.engine.Bind(d)
		client.pushState()
	}
	logging.Info().Int("clients", len(clients)).Msg("websocket clients rebound to new dataset")
}

func (h *Hub) sortedClients() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// logGracefulShutdown closes all clients and logs the shutdown. The context
// error is not logged as an error because cancellation is the expected path.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// closeAllClients closes all connected clients in ID order.
func (h *Hub) closeAllClients() {
	clients := h.sortedClients()

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range clients {
		client.close()
		delete(h.clients, client)
		metrics.WSConnections.Dec()
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
