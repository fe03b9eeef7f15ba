// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/metrics"
)

// TopicReloaded is published after every successful load.
const TopicReloaded = "dataset.reloaded"

// ErrClosed is returned by Subscribe after Close.
var ErrClosed = errors.New("dataset loader is closed")

// ReloadedEvent is the payload of a TopicReloaded message.
type ReloadedEvent struct {
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

type snapshot struct {
	dataset  *indicators.Dataset
	raw      []byte
	loadedAt time.Time
}

// Loader owns the current dataset. Readers never block on a load: the
// snapshot is swapped atomically once parsing succeeded.
type Loader struct {
	source  indicators.Source
	current atomic.Pointer[snapshot]
	pubsub  *gochannel.GoChannel
	closed  atomic.Bool

	// loadMu serializes loads so events are published in load order.
	loadMu sync.Mutex
	logger zerolog.Logger
}

// NewLoader returns a loader with nothing loaded yet.
func NewLoader(source indicators.Source) *Loader {
	return &Loader{
		source: source,
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 16},
			watermill.NewSlogLogger(logging.NewSlogLogger()),
		),
		logger: logging.WithComponent("dataset"),
	}
}

// Load performs one fetch and parse attempt. On failure the previous
// dataset stays current.
func (l *Loader) Load(ctx context.Context) error {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	start := time.Now()
	name := l.source.Name()

	data, err := l.source.Fetch(ctx)
	if err != nil {
		return l.fail(name, err)
	}
	store, err := indicators.ParseStore(data)
	if err != nil {
		return l.fail(name, err)
	}

	snap := &snapshot{
		dataset:  indicators.NewDataset(store),
		raw:      data,
		loadedAt: time.Now(),
	}
	l.current.Store(snap)
	metrics.RecordDatasetLoad(name, store.Len(), nil)

	l.logger.Info().
		Str("source", name).
		Int("records", store.Len()).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")

	l.publish(ReloadedEvent{Source: name, Records: store.Len(), LoadedAt: snap.loadedAt})
	return nil
}

func (l *Loader) fail(name string, err error) error {
	metrics.RecordDatasetLoad(name, 0, err)
	l.logger.Error().Err(err).Str("source", name).Bool("has_previous", l.Ready()).Msg("Dataset load failed")
	return fmt.Errorf("load dataset from %s: %w", name, err)
}

func (l *Loader) publish(evt ReloadedEvent) {
	if l.closed.Load() {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Failed to encode reload event")
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := l.pubsub.Publish(TopicReloaded, msg); err != nil {
		l.logger.Warn().Err(err).Msg("Failed to publish reload event")
	}
}

// Ready reports whether a dataset has been loaded.
func (l *Loader) Ready() bool {
	return l.current.Load() != nil
}

// Dataset returns the current dataset, nil before the first load.
func (l *Loader) Dataset() *indicators.Dataset {
	if snap := l.current.Load(); snap != nil {
		return snap.dataset
	}
	return nil
}

// Raw returns the bytes of the current dataset as fetched.
func (l *Loader) Raw() []byte {
	if snap := l.current.Load(); snap != nil {
		return snap.raw
	}
	return nil
}

// LoadedAt returns when the current dataset was loaded.
func (l *Loader) LoadedAt() time.Time {
	if snap := l.current.Load(); snap != nil {
		return snap.loadedAt
	}
	return time.Time{}
}

// Source returns the configured source name.
func (l *Loader) Source() string {
	return l.source.Name()
}

// Subscribe delivers the current dataset after every successful load until
// ctx is done.
func (l *Loader) Subscribe(ctx context.Context) (<-chan *indicators.Dataset, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}
	msgs, err := l.pubsub.Subscribe(ctx, TopicReloaded)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", TopicReloaded, err)
	}

	out := make(chan *indicators.Dataset, 1)
	go func() {
		defer close(out)
		for msg := range msgs {
			msg.Ack()
			d := l.Dataset()
			if d == nil {
				continue
			}
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close stops event delivery. Loads keep working.
func (l *Loader) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.pubsub.Close()
}
