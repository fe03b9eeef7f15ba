// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"context"
	"time"

	"github.com/tomtom215/allocarte/internal/cache"
	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/metrics"
)

// DatasetProvider returns the current shared dataset, nil before the first
// successful load.
type DatasetProvider interface {
	Dataset() *indicators.Dataset
}

// EngineRegistry keeps one filter engine per session. Engines share the
// current dataset and are rebound lazily when a reload replaced it.
type EngineRegistry struct {
	datasets DatasetProvider
	engines  *cache.LRU[string, *indicators.Engine]
}

// NewEngineRegistry creates a registry holding at most capacity engines,
// each dropped after ttl without use.
func NewEngineRegistry(datasets DatasetProvider, capacity int, ttl time.Duration) *EngineRegistry {
	r := &EngineRegistry{datasets: datasets}
	r.engines = cache.NewLRU[string, *indicators.Engine](capacity, ttl,
		cache.WithEvictCallback[string, *indicators.Engine](func(string, *indicators.Engine) {
			metrics.EngineCacheSize.Set(float64(r.engines.Len()))
		}),
	)
	return r
}

// Get returns the engine of sessionID, creating it on first use. It fails
// with indicators.ErrNotReady while no dataset is loaded.
func (r *EngineRegistry) Get(sessionID string) (*indicators.Engine, error) {
	current := r.datasets.Dataset()
	if current == nil {
		return nil, indicators.ErrNotReady
	}

	engine, created := r.engines.GetOrAdd(sessionID, func() *indicators.Engine {
		e := indicators.NewEngine()
		e.Bind(current)
		return e
	})
	if created {
		metrics.EngineCacheSize.Set(float64(r.engines.Len()))
		return engine, nil
	}
	if engine.Dataset() != current {
		engine.Bind(current)
	}
	return engine, nil
}

// Drop forgets the engine of sessionID.
func (r *EngineRegistry) Drop(sessionID string) {
	r.engines.Remove(sessionID)
}

// Len returns the number of live engines.
func (r *EngineRegistry) Len() int {
	return r.engines.Len()
}

// CleanupExpired drops engines whose session went idle.
func (r *EngineRegistry) CleanupExpired(ctx context.Context) (int, error) {
	n := r.engines.CleanupExpired()
	if n > 0 {
		logging.Ctx(ctx).Debug().Int("dropped", n).Msg("Expired filter engines dropped")
	}
	return n, nil
}
