// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package websocket

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/metrics"
	"github.com/tomtom215/allocarte/internal/validation"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	// Inbound frames per second and burst.
	inboundRate  = 10
	inboundBurst = 20
)

// Error codes sent in error messages.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimited        = "RATE_LIMITED"
)

// clientIDCounter gives clients a stable order for rebinds and shutdown.
var clientIDCounter atomic.Uint64

// Client is a middleman between the websocket connection and its engine.
type Client struct {
	id       uint64
	hub      *Hub
	conn     *websocket.Conn
	send     chan Message
	engine   *indicators.Engine
	limiter  *rate.Limiter
	username string

	mu     sync.Mutex
	closed bool
}

// NewClient creates a client driving engine. conn may be nil in tests.
func NewClient(hub *Hub, conn *websocket.Conn, engine *indicators.Engine, username string) *Client {
	return &Client{
		id:       clientIDCounter.Add(1),
		hub:      hub,
		conn:     conn,
		send:     make(chan Message, 64),
		engine:   engine,
		limiter:  rate.NewLimiter(rate.Limit(inboundRate), inboundBurst),
		username: username,
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() uint64 {
	return c.id
}

// Engine returns the client's engine.
func (c *Client) Engine() *indicators.Engine {
	return c.engine
}

// enqueue queues msg for the write pump. It drops the message when the
// client is closed or too slow to drain its queue.
func (c *Client) enqueue(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		metrics.WSMessagesTotal.WithLabelValues("out", msg.Type).Inc()
		return true
	default:
		logging.Warn().Uint64("client_id", c.id).Str("message_type", msg.Type).Msg("websocket send queue full, dropping message")
		return false
	}
}

// close stops the write pump. It is safe to call more than once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) state() StateData {
	return StateData{
		Filters: c.engine.Filters(),
		Outputs: c.engine.Outputs(),
		Ready:   c.engine.Ready(),
	}
}

func (c *Client) pushState() {
	c.enqueue(Message{Type: MessageTypeState, Data: c.state()})
}

func (c *Client) sendError(code, message string) {
	c.enqueue(Message{Type: MessageTypeError, Data: ErrorData{Code: code, Message: message}})
}

// handleMessage applies one client frame and queues the reply.
func (c *Client) handleMessage(data []byte) {
	if !c.limiter.Allow() {
		metrics.WSMessagesTotal.WithLabelValues("in", "rate_limited").Inc()
		c.sendError(ErrCodeRateLimited, "too many messages")
		return
	}

	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeBadRequest, "invalid JSON message")
		return
	}
	if verr := validation.ValidateStruct(&msg); verr != nil {
		c.sendError(ErrCodeValidation, verr.Error())
		return
	}
	metrics.WSMessagesTotal.WithLabelValues("in", msg.Type).Inc()

	switch msg.Type {
	case MessageTypePing:
		c.enqueue(Message{Type: MessageTypePong})
	case MessageTypeReset:
		c.apply(c.engine.Reset())
	case MessageTypeFilter:
		var req validation.FilterRequest
		if len(msg.Data) == 0 || json.Unmarshal(msg.Data, &req) != nil {
			c.sendError(ErrCodeBadRequest, "filter message needs a dimension and values")
			return
		}
		if verr := validation.ValidateStruct(&req); verr != nil {
			c.sendError(ErrCodeValidation, verr.Error())
			return
		}
		dim, err := indicators.ParseDimension(req.Dimension)
		if err != nil {
			c.sendError(ErrCodeValidation, err.Error())
			return
		}
		c.apply(c.engine.Set(dim, req.Values))
	}
}

func (c *Client) apply(err error) {
	if errors.Is(err, indicators.ErrNotReady) {
		c.sendError(ErrCodeServiceUnavailable, "dataset not loaded")
		return
	}
	if err != nil {
		logging.Error().Err(err).Uint64("client_id", c.id).Msg("websocket filter update failed")
		c.sendError(ErrCodeBadRequest, err.Error())
		return
	}
	c.pushState()
}

// readPump reads frames until the connection fails, then unregisters.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close() // best-effort cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Msg("unexpected websocket close error")
			}
			return
		}
		c.handleMessage(data)
	}
}

// writePump writes queued messages and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // best-effort cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if !ok {
				// The hub closed the channel
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logging.Debug().Err(err).Msg("failed to write close message")
				}
				return
			}

			payload, err := MarshalMessage(message)
			if err != nil {
				logging.Error().Err(err).Str("message_type", message.Type).Msg("failed to encode websocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logging.Debug().Err(err).Msg("failed to write websocket message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start queues the initial state and begins reading and writing. The
// client must already be registered with the hub.
func (c *Client) Start() {
	c.pushState()
	go c.writePump()
	go c.readPump()
}
