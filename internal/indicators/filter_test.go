// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"testing"
)

func periods(rs []Record) []string {
	out := make([]string, 0, len(rs))
	for i := range rs {
		out = append(out, rs[i].Period+"/"+rs[i].Department)
	}
	return out
}

func TestFilter_Flavors(t *testing.T) {
	t.Parallel()

	records := sampleRecords()

	kpi := Filter(records, Criteria{}, FlavorKPI)
	if len(kpi) != 6 {
		t.Errorf("KPI flavor kept %d rows, want 6: %v", len(kpi), periods(kpi))
	}
	for i := range kpi {
		if kpi[i].Department == TotalDepartment {
			t.Errorf("KPI flavor must drop Total rows, got %v", kpi[i])
		}
	}

	m := Filter(records, Criteria{}, FlavorMap)
	if len(m) != 9 {
		t.Errorf("map flavor kept %d rows, want 9: %v", len(m), periods(m))
	}
	for i := range m {
		if !m[i].HasPeriod() {
			t.Errorf("rows without period must be excluded, got %v", m[i])
		}
	}
}

func TestFilter_FluxIgnoresMonth(t *testing.T) {
	t.Parallel()

	c := Criteria{Year: Only("2023"), Month: Only("2023-01")}

	if got := len(Filter(sampleRecords(), c, FlavorMap)); got != 4 {
		t.Errorf("map flavor with month filter kept %d rows, want 4", got)
	}
	if got := len(Filter(sampleRecords(), c, FlavorFlux)); got != 6 {
		t.Errorf("flux flavor kept %d rows, want 6", got)
	}
}

func TestFilter_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"region", Criteria{Region: Only(normandie)}, []string{"2023-01/14", "2023-02/14"}},
		{"department", Criteria{Department: Only("93")}, []string{"2022-12/93", "2023-01/93"}},
		{"year", Criteria{Year: Only("2022")}, []string{"2022-12/75", "2022-12/93"}},
		{"month", Criteria{Month: Only("2023-02")}, []string{"2023-02/14"}},
		{"combined", Criteria{Region: Only(idf), Month: Only("2023-01", "2023-02")}, []string{"2023-01/75", "2023-01/93"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertStrings(t, "rows", periods(Filter(sampleRecords(), tt.c, FlavorKPI)), tt.want)
		})
	}
}

func TestFilter_Monotonic(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	broad := Criteria{Region: Only(idf, normandie), Year: Only("2023")}
	narrow := Criteria{Region: Only(idf), Year: Only("2023"), Month: Only("2023-01")}

	for _, flavor := range []Flavor{FlavorKPI, FlavorMap, FlavorFlux} {
		wide := Filter(records, broad, flavor)
		for _, r := range Filter(records, narrow, flavor) {
			found := false
			for i := range wide {
				if wide[i].Period == r.Period && wide[i].Department == r.Department && wide[i].Region == r.Region {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s: narrowing added row %v", flavor, r)
			}
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	out := Filter(records, Criteria{}, FlavorMap)
	out[0].Allocataires = -1

	if records[0].Allocataires == -1 {
		t.Error("filter output must not alias the input")
	}
}

func TestFlavor_String(t *testing.T) {
	t.Parallel()

	if FlavorFlux.String() != "flux" || Flavor(42).String() != "unknown" {
		t.Error("unexpected flavor names")
	}
}
