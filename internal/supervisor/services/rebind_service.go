// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/allocarte/internal/dataset"
	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
)

// ReloadSource is satisfied by *dataset.Loader.
type ReloadSource interface {
	Subscribe(ctx context.Context) (<-chan *indicators.Dataset, error)
}

// Rebinder is satisfied by *websocket.Hub.
type Rebinder interface {
	Rebind(d *indicators.Dataset)
}

// DatasetRebindService forwards every reloaded dataset to the live
// sessions so their engines recompute against it.
type DatasetRebindService struct {
	source ReloadSource
	target Rebinder
	name   string
}

// NewDatasetRebindService connects source reloads to target.
func NewDatasetRebindService(source ReloadSource, target Rebinder) *DatasetRebindService {
	return &DatasetRebindService{
		source: source,
		target: target,
		name:   "dataset-rebind",
	}
}

// Serve implements suture.Service. Once the loader is closed there is
// nothing left to forward and the service is not restarted.
func (s *DatasetRebindService) Serve(ctx context.Context) error {
	reloads, err := s.source.Subscribe(ctx)
	if errors.Is(err, dataset.ErrClosed) {
		return suture.ErrDoNotRestart
	}
	if err != nil {
		return fmt.Errorf("subscribe to dataset reloads: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-reloads:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return suture.ErrDoNotRestart
			}
			logging.Debug().Int("records", d.Store().Len()).Msg("Rebinding live sessions to reloaded dataset")
			s.target.Rebind(d)
		}
	}
}

func (s *DatasetRebindService) String() string {
	return s.name
}
