// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"context"
	"fmt"
	"math"
	"testing"
)

const (
	idf       = "\u00cele-de-France"
	normandie = "Normandie"
)

// sampleRecords is a small two-region, two-year dataset with one Total
// rollup per region and month.
func sampleRecords() []Record {
	return []Record{
		{Period: "2022-12", Region: idf, Department: "75", Allocataires: 1000, Spend: 2_000_000, RightsOpened: 10, RightsEnded: 4},
		{Period: "2022-12", Region: idf, Department: "93", Allocataires: 800, Spend: 1_200_000, RightsOpened: 6, RightsEnded: 2},
		{Period: "2022-12", Region: idf, Department: TotalDepartment, Allocataires: 1800, Spend: 3_200_000},
		{Period: "2023-01", Region: idf, Department: "75", Allocataires: 1100, Spend: 2_100_000, RightsOpened: 12, RightsEnded: 5},
		{Period: "2023-01", Region: idf, Department: "93", Allocataires: 700, Spend: 1_000_000, RightsOpened: 8, RightsEnded: 3},
		{Period: "2023-01", Region: idf, Department: TotalDepartment, Allocataires: 1800, Spend: 3_100_000},
		{Period: "2023-01", Region: normandie, Department: "14", Allocataires: 300, Spend: 400_000, RightsOpened: 2, RightsEnded: 1},
		{Period: "2023-02", Region: normandie, Department: "14", Allocataires: 350, Spend: 420_000, RightsOpened: 3, RightsEnded: 2},
		{Period: "2023-02", Region: normandie, Department: TotalDepartment, Allocataires: 350, Spend: 420_000},
		{Region: normandie, Department: "50", Allocataires: 999},
	}
}

type fakeSource struct {
	data []byte
	err  error
}

func (f fakeSource) Fetch(context.Context) ([]byte, error) { return f.data, f.err }
func (f fakeSource) Name() string                           { return "fake" }

type renderCall struct {
	dim      Dimension
	options  []string
	selected Selection
}

type recordingView struct {
	calls []renderCall
}

func (v *recordingView) Render(dim Dimension, options []string, selected Selection) {
	v.calls = append(v.calls, renderCall{dim: dim, options: options, selected: selected})
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertStrings(t *testing.T, what string, got, want []string) {
	t.Helper()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}
