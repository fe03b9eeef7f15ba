// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/validation"
)

// maxFilterBodyBytes bounds filter request bodies.
const maxFilterBodyBytes = 64 << 10

// FiltersResponse is the filter state of a session.
type FiltersResponse struct {
	Filters []indicators.FilterView `json:"filters"`
	Outputs map[string]any          `json:"outputs,omitempty"`
}

// ViewResponse is one presenter output.
type ViewResponse struct {
	View   string `json:"view"`
	Output any    `json:"output"`
}

// GetFilters returns the options and selection of every dimension.
//
// @Summary Get filter state
// @Description Returns the options, the current selection and the "all" label of every dimension for the session's engine.
// @Tags Filters
// @Produce json
// @Success 200 {object} APIResponse{data=FiltersResponse}
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse "Dataset not loaded"
// @Router /api/v1/filters [get]
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	engine := h.sessionEngine(w, r)
	if engine == nil {
		return
	}
	WriteSuccess(w, r, FiltersResponse{Filters: engine.Filters()})
}

// SetFilter changes the selection of one dimension. Dependent dimensions
// cascade before the outputs are recomputed.
//
// @Summary Set a filter
// @Description Selects values of one dimension. An empty list or "all" selects everything. Returns the new filter state and every view output.
// @Tags Filters
// @Accept json
// @Produce json
// @Param request body validation.FilterRequest true "Selection"
// @Success 200 {object} APIResponse{data=FiltersResponse}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse "Dataset not loaded"
// @Router /api/v1/filters [post]
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, maxFilterBodyBytes)

	var req validation.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationFailed(verr)
		return
	}
	dim, err := indicators.ParseDimension(req.Dimension)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	engine := h.sessionEngine(w, r)
	if engine == nil {
		return
	}
	if err := engine.Set(dim, req.Values); err != nil {
		writeEngineError(w, r, err)
		return
	}
	rw.Success(FiltersResponse{Filters: engine.Filters(), Outputs: engine.Outputs()})
}

// ResetFilters puts every dimension back to "all".
//
// @Summary Reset filters
// @Tags Filters
// @Produce json
// @Success 200 {object} APIResponse{data=FiltersResponse}
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse "Dataset not loaded"
// @Router /api/v1/filters [delete]
func (h *Handler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	engine := h.sessionEngine(w, r)
	if engine == nil {
		return
	}
	if err := engine.Reset(); err != nil {
		writeEngineError(w, r, err)
		return
	}
	WriteSuccess(w, r, FiltersResponse{Filters: engine.Filters(), Outputs: engine.Outputs()})
}

// GetView returns the output of one view for the session's selection.
//
// @Summary Get a view
// @Description Returns the dashboard (KPIs, map, charts) or indicators (protection, profile, territories, flux) output.
// @Tags Filters
// @Produce json
// @Param view path string true "View name" Enums(dashboard, indicators)
// @Success 200 {object} APIResponse{data=ViewResponse}
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse "Unknown view"
// @Failure 503 {object} APIResponse "Dataset not loaded"
// @Router /api/v1/views/{view} [get]
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	req := validation.ViewRequest{View: chi.URLParam(r, "view")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		NewResponseWriter(w, r).NotFound(ErrUnknownView.Error() + ": " + sanitizeLogValue(req.View))
		return
	}

	engine := h.sessionEngine(w, r)
	if engine == nil {
		return
	}
	output, ok := engine.Output(req.View)
	if !ok {
		NewResponseWriter(w, r).NotFound(ErrUnknownView.Error() + ": " + req.View)
		return
	}
	WriteSuccess(w, r, ViewResponse{View: req.View, Output: output})
}
