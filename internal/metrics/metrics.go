// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocarte_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "allocarte_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "allocarte_api_active_requests",
			Help: "Number of API requests currently being handled",
		},
	)

	// Dataset Metrics
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocarte_dataset_loads_total",
			Help: "Dataset load attempts by outcome",
		},
		[]string{"source", "status"}, // status: "success", "failure"
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "allocarte_dataset_records",
			Help: "Number of indicator records in the loaded dataset",
		},
	)

	// Engine Metrics
	EngineRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocarte_engine_recompute_duration_seconds",
			Help:    "Duration of one filter and aggregation pass",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	EngineCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "allocarte_engine_cache_entries",
			Help: "Number of per-session engines held in memory",
		},
	)

	// Auth Metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocarte_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // "success", "missing_credentials", "unknown_user", "wrong_password", "error"
	)

	// Authorization Metrics
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocarte_authz_decisions_total",
			Help: "Authorization decisions by role, action and outcome",
		},
		[]string{"role", "action", "decision"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "allocarte_websocket_connections",
			Help: "Current number of live filter sessions",
		},
	)

	WSMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocarte_websocket_messages_total",
			Help: "WebSocket messages by direction and type",
		},
		[]string{"direction", "type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "allocarte_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocarte_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocarte_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)
)

// RecordAPIRequest records one finished API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDatasetLoad records a load attempt. records is ignored on failure.
func RecordDatasetLoad(source string, records int, err error) {
	if err != nil {
		DatasetLoadsTotal.WithLabelValues(source, "failure").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues(source, "success").Inc()
	DatasetRecords.Set(float64(records))
}

// RecordLogin records a login attempt outcome.
func RecordLogin(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordAuthzDecision records an authorization decision.
func RecordAuthzDecision(role, action string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	AuthzDecisionsTotal.WithLabelValues(role, action, decision).Inc()
}
