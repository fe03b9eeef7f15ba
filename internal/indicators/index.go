// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"slices"
	"sort"
)

type stringSet map[string]struct{}

// Index maps year -> period keys and region -> departments. It is built
// once per store and read-only afterwards.
type Index struct {
	monthsByYear  map[string]stringSet
	deptsByRegion map[string]stringSet
}

// BuildIndex derives the lookup index from records.
//
// Records without a period are skipped entirely. A record with a region
// registers the region even when its department is absent or "Total";
// "Total" itself is never listed as a department.
func BuildIndex(records []Record) *Index {
	ix := &Index{
		monthsByYear:  make(map[string]stringSet),
		deptsByRegion: make(map[string]stringSet),
	}
	for i := range records {
		r := &records[i]
		if !r.HasPeriod() {
			continue
		}
		addTo(ix.monthsByYear, r.Year(), r.Period)

		if r.Region == "" {
			continue
		}
		if _, ok := ix.deptsByRegion[r.Region]; !ok {
			ix.deptsByRegion[r.Region] = make(stringSet)
		}
		if r.IsDepartmentRow() {
			ix.deptsByRegion[r.Region][r.Department] = struct{}{}
		}
	}
	return ix
}

func addTo(m map[string]stringSet, key, value string) {
	set, ok := m[key]
	if !ok {
		set = make(stringSet)
		m[key] = set
	}
	set[value] = struct{}{}
}

// MonthsByYear returns a copy of the year index with sorted values.
func (ix *Index) MonthsByYear() map[string][]string {
	return flatten(ix.monthsByYear)
}

// DeptsByRegion returns a copy of the region index with sorted values.
func (ix *Index) DeptsByRegion() map[string][]string {
	return flatten(ix.deptsByRegion)
}

// Regions lists every region, ascending.
func (ix *Index) Regions() []string {
	return sortedKeys(ix.deptsByRegion, false)
}

// Years lists every year, most recent first.
func (ix *Index) Years() []string {
	return sortedKeys(ix.monthsByYear, true)
}

// DepartmentsFor returns the departments valid under a region selection,
// ascending.
func (ix *Index) DepartmentsFor(regions Selection) []string {
	return union(ix.deptsByRegion, regions, false)
}

// MonthsFor returns the period keys valid under a year selection, most
// recent first.
func (ix *Index) MonthsFor(years Selection) []string {
	return union(ix.monthsByYear, years, true)
}

func union(m map[string]stringSet, sel Selection, desc bool) []string {
	out := make(stringSet)
	for key, set := range m {
		if !sel.Contains(key) {
			continue
		}
		for v := range set {
			out[v] = struct{}{}
		}
	}
	return sortSet(out, desc)
}

func sortedKeys(m map[string]stringSet, desc bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return sortStrings(keys, desc)
}

func sortSet(s stringSet, desc bool) []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	return sortStrings(values, desc)
}

func sortStrings(values []string, desc bool) []string {
	if desc {
		sort.Sort(sort.Reverse(sort.StringSlice(values)))
	} else {
		sort.Strings(values)
	}
	return values
}

func flatten(m map[string]stringSet) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, set := range m {
		out[k] = sortSet(set, false)
	}
	return out
}

// contains reports whether v is one of values.
func contains(values []string, v string) bool {
	return slices.Contains(values, v)
}
