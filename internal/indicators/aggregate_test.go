// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"fmt"
	"testing"
)

func TestAverageSpend(t *testing.T) {
	t.Parallel()

	rs := []Record{
		{Period: "2023-01", Department: "75", Allocataires: 60, Spend: 300_000},
		{Period: "2023-01", Department: "92", Allocataires: 40, Spend: 200_000},
	}
	avg, ok := AverageSpend(rs)
	if !ok || !approxEqual(avg, 5000) {
		t.Fatalf("AverageSpend = %v, %v; want 5000, true", avg, ok)
	}
	if got := FormatEuro(avg); got != "5\u202f000\u00a0€" {
		t.Errorf("FormatEuro(5000) = %q", got)
	}

	if _, ok := AverageSpend(nil); ok {
		t.Error("empty input must report no data")
	}
	if _, ok := AverageSpend([]Record{{Spend: 10}}); ok {
		t.Error("zero allocataires must report no data")
	}
}

func TestAllowanceAverage_Bounds(t *testing.T) {
	t.Parallel()

	rs := []Record{
		{DailyAllowance: 30, Compensated: 10, Allocataires: 50},
		{DailyAllowance: 50, Compensated: 0, Allocataires: 30},
		{DailyAllowance: 42, Compensated: 5, Allocataires: 5},
	}
	avg, ok := AllowanceAverage(rs)
	if !ok {
		t.Fatal("expected a value")
	}
	// (30*10 + 50*30 + 42*5) / 45
	if !approxEqual(avg, 2010.0/45) {
		t.Errorf("AllowanceAverage = %v, want %v", avg, 2010.0/45)
	}
	if avg < 30 || avg > 50 {
		t.Errorf("weighted mean %v outside [30, 50]", avg)
	}

	if _, ok := AllowanceAverage([]Record{{DailyAllowance: 40}}); ok {
		t.Error("zero weights must report no data")
	}
}

func TestProfileOf(t *testing.T) {
	t.Parallel()

	rs := []Record{
		{Allocataires: 100, Compensated: 80, WorkingShareCompensated: 0.2, TrainingAREF: 5, TrainingASP: 3},
		{Allocataires: 100, Compensated: 60, WorkingShareCompensated: 0.4, TrainingAREF: 2},
	}
	p, ok := ProfileOf(rs)
	if !ok {
		t.Fatal("expected a profile")
	}
	// working = 0.2*100 + 0.4*100 = 60
	if !approxEqual(p.WorkingWhileCompensated, 30) {
		t.Errorf("WorkingWhileCompensated = %v, want 30", p.WorkingWhileCompensated)
	}
	if !approxEqual(p.InTraining, 5) {
		t.Errorf("InTraining = %v, want 5", p.InTraining)
	}
	if !approxEqual(p.CompensatedWithoutActivity, 80.0*100/140) {
		t.Errorf("CompensatedWithoutActivity = %v", p.CompensatedWithoutActivity)
	}
	if sum := p.WorkingWhileCompensated + p.InTraining + p.CompensatedWithoutActivity; approxEqual(sum, 100) {
		t.Errorf("shares use different denominators and should not add to 100, got %v", sum)
	}

	if _, ok := ProfileOf(nil); ok {
		t.Error("empty input must report no profile")
	}
}

func TestTopEntity(t *testing.T) {
	t.Parallel()

	rs := []Record{
		{Region: "B", Allocataires: 10},
		{Region: "A", Allocataires: 4},
		{Region: "A", Allocataires: 6},
		{Region: "", Allocataires: 3},
	}
	top, ok := TopEntity(rs, KeyRegion, MeasureAllocataires)
	if !ok || top.Key != "B" || top.Value != 10 {
		t.Errorf("TopEntity = %+v, %v; want first of the tied entries", top, ok)
	}

	groups := GroupSum(rs, KeyRegion, MeasureAllocataires)
	if len(groups) != 3 || groups[2].Key != Unknown {
		t.Errorf("missing region must group under %q, got %+v", Unknown, groups)
	}

	if _, ok := TopEntity(nil, KeyRegion, MeasureAllocataires); ok {
		t.Error("empty input must report no entity")
	}
}

func TestTopNWithOther(t *testing.T) {
	t.Parallel()

	var rs []Record
	var total float64
	for i := 1; i <= 13; i++ {
		spend := float64(i * 100)
		rs = append(rs, Record{Period: "2023-01", Department: fmt.Sprintf("%02d", i), Spend: spend})
		total += spend
	}
	rs = append(rs, Record{Period: "2023-01", Department: TotalDepartment, Spend: 1e9})

	ranked := TopNWithOther(rs, 10)
	if len(ranked) != 11 {
		t.Fatalf("expected 10 entries plus %q, got %d", OtherLabel, len(ranked))
	}
	if ranked[0].Key != "13" || ranked[9].Key != "04" {
		t.Errorf("unexpected ranking: %+v", ranked)
	}
	last := ranked[len(ranked)-1]
	if last.Key != OtherLabel || last.Value != 600 {
		t.Errorf("other bucket = %+v, want %s = 600", last, OtherLabel)
	}

	var sum float64
	for _, r := range ranked {
		sum += r.Value
	}
	if !approxEqual(sum, total) {
		t.Errorf("ranking must conserve spend: %v != %v", sum, total)
	}

	if got := TopNWithOther(rs[:3], 10); len(got) != 3 {
		t.Errorf("no other bucket expected for 3 departments, got %+v", got)
	}
}

func TestTopNWithOther_StableTies(t *testing.T) {
	t.Parallel()

	rs := []Record{
		{Department: "b", Spend: 5},
		{Department: "a", Spend: 5},
		{Department: "c", Spend: 9},
	}
	ranked := TopNWithOther(rs, 2)
	want := []string{"c", "b", OtherLabel}
	got := make([]string, 0, len(ranked))
	for _, r := range ranked {
		got = append(got, r.Key)
	}
	assertStrings(t, "keys", got, want)
}

func TestTrailingAverage(t *testing.T) {
	t.Parallel()

	var rs []Record
	for i := 1; i <= 15; i++ {
		year, month := 2022, i
		if i > 12 {
			year, month = 2023, i-12
		}
		rs = append(rs, Record{
			Period:       fmt.Sprintf("%d-%02d", year, month),
			Department:   "75",
			RightsOpened: float64(i),
			RightsEnded:  1,
		})
	}

	s := PeriodSeries(rs, MeasureRightsOpened, MeasureRightsEnded)
	if s.Len() != 15 {
		t.Fatalf("expected 15 periods, got %d", s.Len())
	}
	avg, ok := TrailingAverage(s, RollingWindow)
	if !ok || !approxEqual(avg[0], 9.5) || !approxEqual(avg[1], 1) {
		t.Errorf("TrailingAverage = %v, %v; want [9.5 1]", avg, ok)
	}

	short, ok := TrailingAverage(PeriodSeries(rs[:3], MeasureRightsOpened), RollingWindow)
	if !ok || !approxEqual(short[0], 2) {
		t.Errorf("short series average = %v, want 2", short)
	}

	if _, ok := TrailingAverage(Series{Values: [][]float64{{}}}, RollingWindow); ok {
		t.Error("empty series must report no data")
	}
}

func TestPeriodSeries_SortsLabels(t *testing.T) {
	t.Parallel()

	rs := []Record{
		{Period: "2023-02", Spend: 2},
		{Period: "2022-11", Spend: 1},
		{Period: "2023-02", Spend: 3},
		{Spend: 100},
	}
	s := PeriodSeries(rs, MeasureSpend)
	assertStrings(t, "labels", s.Labels, []string{"2022-11", "2023-02"})
	if s.Values[0][1] != 5 {
		t.Errorf("expected 5 for 2023-02, got %v", s.Values[0][1])
	}
}

func TestMapFeatures(t *testing.T) {
	t.Parallel()

	geo := Feature{"type": "Feature", "properties": map[string]any{"code": "75"}}
	rs := []Record{
		{Department: "75", Allocataires: 10, Geometry: geo},
		{Department: "75", Allocataires: 5, Geometry: Feature{"type": "Feature"}},
		{Department: TotalDepartment, Allocataires: 100, Geometry: geo},
		{Department: "93", Allocataires: 7},
	}

	features := MapFeatures(rs)
	if len(features) != 1 {
		t.Fatalf("expected one feature, got %d", len(features))
	}
	props := features[0]["properties"].(map[string]any)
	if props["nom"] != "75" || props["nb_alloc"] != 15.0 || props["code"] != "75" {
		t.Errorf("unexpected properties: %v", props)
	}

	stored := geo["properties"].(map[string]any)
	if _, ok := stored["nb_alloc"]; ok {
		t.Error("stored geometry must not be mutated")
	}
}

func TestChoroplethColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    float64
		want string
	}{
		{60000, "#08306b"},
		{50000, "#08519c"},
		{30001, "#08519c"},
		{15001, "#2171b5"},
		{8001, "#4292c6"},
		{4001, "#6baed6"},
		{2001, "#9ecae1"},
		{1001, "#c6dbef"},
		{1000, "#eff3ff"},
		{0, "#eff3ff"},
	}
	for _, tt := range tests {
		if got := ChoroplethColor(tt.v); got != tt.want {
			t.Errorf("ChoroplethColor(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}
