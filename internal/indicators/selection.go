// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"fmt"
	"slices"

	"github.com/goccy/go-json"
)

// Dimension names one of the four filter dimensions.
type Dimension string

const (
	DimRegion     Dimension = "region"
	DimDepartment Dimension = "departement"
	DimYear       Dimension = "year"
	DimMonth      Dimension = "month"
)

// Dimensions lists the filter dimensions in display order.
var Dimensions = []Dimension{DimRegion, DimDepartment, DimYear, DimMonth}

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if !slices.Contains(Dimensions, d) {
		return "", fmt.Errorf("unknown filter dimension %q", s)
	}
	return d, nil
}

// AllLabel is the option text shown for the "all" entry of a dimension.
func (d Dimension) AllLabel() string {
	switch d {
	case DimRegion:
		return "France entière"
	case DimDepartment:
		return "Tous les départements"
	default:
		return "Tout l'historique"
	}
}

// Selection is either "all" or a non-empty set of explicit values. The
// zero value is "all"; a Selection is never an empty explicit set.
type Selection struct {
	values []string
}

// All returns the unrestricted selection.
func All() Selection {
	return Selection{}
}

// Only returns the normalized selection of values.
func Only(values ...string) Selection {
	return Normalize(values)
}

// Normalize applies the multi-select rule to a raw selection:
// explicit values win over "all", and nothing selected means "all".
// Duplicates and empty strings are dropped; first-seen order is kept.
func Normalize(raw []string) Selection {
	var values []string
	for _, v := range raw {
		if v == "" || v == AllValue || slices.Contains(values, v) {
			continue
		}
		values = append(values, v)
	}
	return Selection{values: values}
}

// IsAll reports whether the selection is unrestricted.
func (s Selection) IsAll() bool {
	return len(s.values) == 0
}

// Values returns a copy of the explicit values, nil for "all".
func (s Selection) Values() []string {
	return slices.Clone(s.values)
}

// Raw returns the selection as a select widget would report it.
func (s Selection) Raw() []string {
	if s.IsAll() {
		return []string{AllValue}
	}
	return s.Values()
}

// Contains reports whether v passes the selection. "all" passes everything.
func (s Selection) Contains(v string) bool {
	return s.IsAll() || slices.Contains(s.values, v)
}

// Equal reports whether two selections hold the same values in any order.
func (s Selection) Equal(o Selection) bool {
	if len(s.values) != len(o.values) {
		return false
	}
	for _, v := range s.values {
		if !slices.Contains(o.values, v) {
			return false
		}
	}
	return true
}

// restrict keeps only values present in options. An emptied selection
// collapses to "all".
func (s Selection) restrict(options []string) Selection {
	if s.IsAll() {
		return s
	}
	var kept []string
	for _, v := range s.values {
		if contains(options, v) {
			kept = append(kept, v)
		}
	}
	return Selection{values: kept}
}

func (s Selection) set() map[string]struct{} {
	if s.IsAll() {
		return nil
	}
	m := make(map[string]struct{}, len(s.values))
	for _, v := range s.values {
		m[v] = struct{}{}
	}
	return m
}

// MarshalJSON encodes the selection as its raw form.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Raw())
}

// UnmarshalJSON decodes a raw list and normalizes it.
func (s *Selection) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Normalize(raw)
	return nil
}
