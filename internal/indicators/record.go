// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package indicators is the filtering and aggregation engine behind the
// dashboard. It owns the record store, the lookup index built from it, the
// cascading four-dimension filter state and the pure aggregations that turn
// a filtered slice of records into KPI tiles, chart series and map layers.
//
// The package never touches HTTP or rendering. Presentation code consumes
// plain values (KPI, ChartSeries, MapLayer) and the OptionsView port.
package indicators

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const (
	// TotalDepartment marks a region-level rollup row.
	TotalDepartment = "Total"

	// AllValue is the "no restriction" sentinel of a filter dimension.
	AllValue = "all"

	// Unknown labels a territory whose name is absent in the record.
	Unknown = "Non renseigné"
)

// Feature is a GeoJSON object kept as decoded JSON.
type Feature map[string]any

// IsFeature reports whether f is a GeoJSON Feature.
func (f Feature) IsFeature() bool {
	if f == nil {
		return false
	}
	t, ok := f["type"].(string)
	return ok && t == "Feature"
}

// Record is one row of the indicators dataset: a department or region
// rollup for one month. Absent strings are "", absent numbers are 0.
type Record struct {
	Period     string `json:"annee_mois"`
	Region     string `json:"region"`
	Department string `json:"departement"`

	Allocataires   float64 `json:"nb_alloc"`
	Spend          float64 `json:"depense"`
	DailyAllowance float64 `json:"aj_moy"`
	Compensated    float64 `json:"nb_indemnises"`

	// WorkingShareCompensated is a proportion of allocataires in [0,1].
	WorkingShareCompensated float64 `json:"part_travail_ind"`
	TrainingAREF            float64 `json:"nb_indemnises_aref"`
	TrainingASP             float64 `json:"nb_indemnises_asp"`

	RightsOpened float64 `json:"nb_od"`
	RightsEnded  float64 `json:"fdd"`

	// WorkingShare is a proportion in [0,1] averaged per period.
	WorkingShare float64 `json:"part_travail"`

	Geometry Feature `json:"geo_departement,omitempty"`
}

// Year returns the first four characters of the period key.
func (r *Record) Year() string {
	if len(r.Period) < 4 {
		return r.Period
	}
	return r.Period[:4]
}

// HasPeriod reports whether the record carries a period key.
func (r *Record) HasPeriod() bool {
	return r.Period != ""
}

// IsDepartmentRow reports whether the record is a department row, that is
// it has a department and it is not the regional "Total" rollup.
func (r *Record) IsDepartmentRow() bool {
	return r.Department != "" && r.Department != TotalDepartment
}

// rawRecord decodes one dataset element without ever failing on a
// malformed field.
type rawRecord struct {
	Period     lenientString `json:"annee_mois"`
	Region     lenientString `json:"region"`
	Department lenientString `json:"departement"`

	Allocataires            lenientNumber `json:"nb_alloc"`
	Spend                   lenientNumber `json:"depense"`
	DailyAllowance          lenientNumber `json:"aj_moy"`
	Compensated             lenientNumber `json:"nb_indemnises"`
	WorkingShareCompensated lenientNumber `json:"part_travail_ind"`
	TrainingAREF            lenientNumber `json:"nb_indemnises_aref"`
	TrainingASP             lenientNumber `json:"nb_indemnises_asp"`
	RightsOpened            lenientNumber `json:"nb_od"`
	RightsEnded             lenientNumber `json:"fdd"`
	WorkingShare            lenientNumber `json:"part_travail"`

	Geometry json.RawMessage `json:"geo_departement"`
}

func (raw *rawRecord) record() Record {
	r := Record{
		Period:                  string(raw.Period),
		Region:                  normalizeName(string(raw.Region)),
		Department:              normalizeName(string(raw.Department)),
		Allocataires:            float64(raw.Allocataires),
		Spend:                   float64(raw.Spend),
		DailyAllowance:          float64(raw.DailyAllowance),
		Compensated:             float64(raw.Compensated),
		WorkingShareCompensated: float64(raw.WorkingShareCompensated),
		TrainingAREF:            float64(raw.TrainingAREF),
		TrainingASP:             float64(raw.TrainingASP),
		RightsOpened:            float64(raw.RightsOpened),
		RightsEnded:             float64(raw.RightsEnded),
		WorkingShare:            float64(raw.WorkingShare),
	}
	if len(raw.Geometry) > 0 && raw.Geometry[0] == '{' {
		var f Feature
		if err := json.Unmarshal(raw.Geometry, &f); err == nil {
			r.Geometry = f
		}
	}
	return r
}

// lenientNumber accepts a JSON number or numeric string. Anything else,
// including null, NaN and infinities, decodes as 0.
type lenientNumber float64

func (n *lenientNumber) UnmarshalJSON(b []byte) error {
	*n = 0
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = lenientNumber(v)
	return nil
}

// lenientString accepts a JSON string or number. Department codes are
// sometimes exported as bare numbers.
type lenientString string

func (s *lenientString) UnmarshalJSON(b []byte) error {
	*s = ""
	text := strings.TrimSpace(string(b))
	if text == "" || text == "null" {
		return nil
	}
	if text[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			var decoded string
			if json.Unmarshal(b, &decoded) == nil {
				*s = lenientString(decoded)
			}
			return nil
		}
		*s = lenientString(unquoted)
		return nil
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		*s = lenientString(text)
	}
	return nil
}
