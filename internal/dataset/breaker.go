// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package dataset

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/metrics"
)

// BreakerSource wraps a remote source with a circuit breaker so a dead
// upstream is not hammered by reload requests.
//
// The breaker uses real time for its interval and timeout. Tests drive it
// through consecutive failures rather than waiting for recovery.
type BreakerSource struct {
	source indicators.Source
	cb     *gobreaker.CircuitBreaker[[]byte]
	name   string
}

// NewBreakerSource wraps source. The circuit opens after 3 consecutive
// failures and allows one probe after 30 seconds.
func NewBreakerSource(source indicators.Source) *BreakerSource {
	name := "dataset-" + source.Name()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerSource{source: source, cb: cb, name: name}
}

// Fetch implements indicators.Source.
func (b *BreakerSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := b.cb.Execute(func() ([]byte, error) {
		return b.source.Fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return data, nil
}

// Name implements indicators.Source.
func (b *BreakerSource) Name() string { return b.source.Name() }

// State returns the breaker state name.
func (b *BreakerSource) State() string { return stateToString(b.cb.State()) }

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
