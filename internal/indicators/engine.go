// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/metrics"
)

// ErrNotReady is returned by filter operations before a dataset is bound.
var ErrNotReady = errors.New("indicators engine is not ready")

// Source delivers the raw dataset payload.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// Dataset is a store together with its lookup index. It is read-only and
// can be shared by any number of engines.
type Dataset struct {
	store *Store
	index *Index
}

// NewDataset indexes store.
func NewDataset(store *Store) *Dataset {
	if store == nil {
		store = NewStore(nil)
	}
	return &Dataset{store: store, index: BuildIndex(store.records)}
}

// Store returns the record store.
func (d *Dataset) Store() *Store { return d.store }

// Index returns the lookup index.
func (d *Dataset) Index() *Index { return d.index }

// FilterView describes one dimension for a rendering surface.
type FilterView struct {
	Dimension Dimension `json:"dimension"`
	AllLabel  string    `json:"all_label"`
	Options   []string  `json:"options"`
	Selected  Selection `json:"selected"`
}

// Engine owns a dataset binding, one filter state, the registered
// presenters and their latest outputs. Every mutation runs one complete
// filter and aggregation pass before returning.
type Engine struct {
	mu         sync.Mutex
	dataset    *Dataset
	state      *State
	view       OptionsView
	presenters []Presenter
	outputs    map[string]any
	logger     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithOptionsView sets the port notified of option and selection changes.
func WithOptionsView(v OptionsView) Option {
	return func(e *Engine) { e.view = v }
}

// WithPresenters replaces the default dashboard and indicators presenters.
func WithPresenters(p ...Presenter) Option {
	return func(e *Engine) { e.presenters = p }
}

// WithLogger sets the engine logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an unready engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		presenters: []Presenter{DashboardPresenter{}, IndicatorsPresenter{}},
		outputs:    make(map[string]any),
		logger:     logging.WithComponent("indicators"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches and parses a dataset from src and binds it. On failure the
// error is logged and returned, and the engine keeps whatever it had: an
// engine that was never loaded stays unready.
func (e *Engine) Load(ctx context.Context, src Source) error {
	data, err := src.Fetch(ctx)
	if err == nil {
		var store *Store
		store, err = ParseStore(data)
		if err == nil {
			metrics.RecordDatasetLoad(src.Name(), store.Len(), nil)
			e.Bind(NewDataset(store))
			e.logger.Info().Str("source", src.Name()).Int("records", store.Len()).Msg("Dataset loaded")
			return nil
		}
	}

	metrics.RecordDatasetLoad(src.Name(), 0, err)
	e.logger.Error().Err(err).Str("source", src.Name()).Msg("Dataset load failed")
	return fmt.Errorf("load dataset from %s: %w", src.Name(), err)
}

// Bind attaches a dataset. A first bind starts from "all" everywhere; a
// rebind keeps the selections the new dataset still supports.
func (e *Engine) Bind(d *Dataset) {
	if d == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		e.state = NewState(d.index)
	} else {
		e.state.rebind(d.index)
	}
	e.dataset = d
	e.render(Dimensions...)
	e.recompute()
}

// Dataset returns the bound dataset, nil while unready.
func (e *Engine) Dataset() *Dataset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dataset
}

// Ready reports whether a dataset is bound.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dataset != nil
}

// Set changes the selection of one dimension, cascades and recomputes.
func (e *Engine) Set(dim Dimension, raw []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dataset == nil {
		return ErrNotReady
	}
	e.render(e.state.Set(dim, raw)...)
	e.recompute()
	return nil
}

// Reset puts every dimension back to "all" and recomputes.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dataset == nil {
		return ErrNotReady
	}
	e.state.Reset()
	e.render(Dimensions...)
	e.recompute()
	return nil
}

// Criteria returns the current selections.
func (e *Engine) Criteria() Criteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return Criteria{}
	}
	return e.state.Criteria()
}

// Filters describes every dimension in display order. It is empty while
// the engine is unready.
func (e *Engine) Filters() []FilterView {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return []FilterView{}
	}
	out := make([]FilterView, 0, len(Dimensions))
	for _, dim := range Dimensions {
		out = append(out, FilterView{
			Dimension: dim,
			AllLabel:  dim.AllLabel(),
			Options:   e.state.Options(dim),
			Selected:  e.state.Selection(dim),
		})
	}
	return out
}

// Outputs returns the latest output of every presenter, by name.
func (e *Engine) Outputs() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.outputs)
}

// Output returns the latest output of one presenter.
func (e *Engine) Output(name string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out, ok := e.outputs[name]
	return out, ok
}

// render must be called with mu held.
func (e *Engine) render(dims ...Dimension) {
	if e.view == nil {
		return
	}
	for _, dim := range dims {
		e.view.Render(dim, e.state.Options(dim), e.state.Selection(dim))
	}
}

// recompute must be called with mu held.
func (e *Engine) recompute() {
	start := time.Now()
	in := FilterInputs(e.dataset.store.records, e.state.Criteria())
	outputs := make(map[string]any, len(e.presenters))
	for _, p := range e.presenters {
		outputs[p.Name()] = p.Present(in)
	}
	e.outputs = outputs
	metrics.EngineRecomputeDuration.Observe(time.Since(start).Seconds())
}
