// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package services

import (
	"context"
	"time"

	"github.com/tomtom215/allocarte/internal/logging"
)

// Expirer drops expired entries and reports how many went. Satisfied by
// the session stores and the engine registry.
type Expirer interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// CleanupService sweeps expired sessions and idle filter engines on a
// fixed interval. A failing sweep is logged and retried on the next tick.
type CleanupService struct {
	interval time.Duration
	targets  map[string]Expirer
	name     string
}

// NewCleanupService sweeps every target each interval. A non-positive
// interval means 5 minutes.
func NewCleanupService(interval time.Duration, targets map[string]Expirer) *CleanupService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CleanupService{
		interval: interval,
		targets:  targets,
		name:     "expiry-cleanup",
	}
}

// Serve implements suture.Service.
func (s *CleanupService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CleanupService) sweep(ctx context.Context) {
	for name, target := range s.targets {
		removed, err := target.CleanupExpired(ctx)
		if err != nil {
			logging.Warn().Err(err).Str("target", name).Msg("Expiry cleanup failed")
			continue
		}
		if removed > 0 {
			logging.Debug().Str("target", name).Int("removed", removed).Msg("Expired entries removed")
		}
	}
}

func (s *CleanupService) String() string {
	return s.name
}
