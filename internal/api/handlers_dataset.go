// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/logging"
)

// DatasetInfo describes the loaded dataset.
type DatasetInfo struct {
	Ready    bool       `json:"ready"`
	Source   string     `json:"source"`
	Records  int        `json:"records"`
	Regions  int        `json:"regions"`
	Years    []string   `json:"years"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

func (h *Handler) datasetInfo() DatasetInfo {
	info := DatasetInfo{Source: h.loader.Source(), Years: []string{}}
	d := h.loader.Dataset()
	if d == nil {
		return info
	}
	loadedAt := h.loader.LoadedAt()
	info.Ready = true
	info.Records = d.Store().Len()
	info.Regions = len(d.Index().Regions())
	info.Years = d.Index().Years()
	info.LoadedAt = &loadedAt
	return info
}

// RawDataset serves the dataset bytes as loaded, for front ends that do
// their own filtering.
//
// @Summary Raw dataset
// @Tags Dataset
// @Produce json
// @Success 200 {array} object "Indicator records"
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse "Dataset not loaded"
// @Router /evolution_indicateurs_cles_ac.json [get]
func (h *Handler) RawDataset(w http.ResponseWriter, r *http.Request) {
	if auth.GetAuthSubject(r.Context()) == nil {
		NewResponseWriter(w, r).Unauthorized("Authentication required")
		return
	}
	raw := h.loader.Raw()
	if raw == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Dataset not loaded")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "private, no-cache")
	w.Header().Set("Last-Modified", h.loader.LoadedAt().UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write dataset")
	}
}

// GetDataset returns information about the loaded dataset.
//
// @Summary Dataset information
// @Tags Dataset
// @Produce json
// @Success 200 {object} APIResponse{data=DatasetInfo}
// @Failure 401 {object} APIResponse
// @Router /api/v1/dataset [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.datasetInfo())
}

// ReloadDataset fetches the dataset again. Live sessions rebind to the new
// data once the reload event reaches them.
//
// @Summary Reload the dataset
// @Description Admin only. On failure the previous dataset stays current.
// @Tags Admin
// @Produce json
// @Success 200 {object} APIResponse{data=DatasetInfo}
// @Failure 401 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 503 {object} APIResponse "Reload failed"
// @Router /api/v1/admin/dataset/reload [post]
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.loader.Load(r.Context()); err != nil {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Dataset reload failed", map[string]interface{}{
				"reason":       err.Error(),
				"has_previous": h.loader.Ready(),
			})
		return
	}
	if subject := auth.GetAuthSubject(r.Context()); subject != nil {
		logging.Ctx(r.Context()).Info().Str("username", subject.Username).Msg("Dataset reloaded on request")
	}
	WriteSuccess(w, r, h.datasetInfo())
}
