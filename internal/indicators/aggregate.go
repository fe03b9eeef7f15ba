// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"sort"
)

// ============================================================================
// AGGREGATIONS
// ============================================================================
// Every function here is a pure reducer over an already filtered slice.
// Functions returning a bool report false when the input carries no data
// for the quantity; the float result is then 0, never NaN.
// ============================================================================

// Measure extracts a numeric quantity from a record.
type Measure func(r *Record) float64

// KeyFunc extracts a grouping key from a record.
type KeyFunc func(r *Record) string

// Measures used by the dashboard views.
var (
	MeasureAllocataires Measure = func(r *Record) float64 { return r.Allocataires }
	MeasureSpend        Measure = func(r *Record) float64 { return r.Spend }
	MeasureRightsOpened Measure = func(r *Record) float64 { return r.RightsOpened }
	MeasureRightsEnded  Measure = func(r *Record) float64 { return r.RightsEnded }
	MeasureWorkingShare Measure = func(r *Record) float64 { return r.WorkingShare }
)

// Keys used by the territory rankings. Absent names group under Unknown.
var (
	KeyRegion KeyFunc = func(r *Record) string {
		if r.Region == "" {
			return Unknown
		}
		return r.Region
	}
	KeyDepartment KeyFunc = func(r *Record) string {
		if r.Department == "" {
			return Unknown
		}
		return r.Department
	}
)

// Totals are the headline sums of the dashboard view.
type Totals struct {
	Allocataires float64 `json:"nb_alloc"`
	Spend        float64 `json:"depense"`
}

// SumTotals sums allocataires and spend. ok is false for empty input.
func SumTotals(rs []Record) (Totals, bool) {
	var t Totals
	for i := range rs {
		t.Allocataires += rs[i].Allocataires
		t.Spend += rs[i].Spend
	}
	return t, len(rs) > 0
}

// AverageSpend is sum(depense) / sum(nb_alloc), the spend per recipient.
func AverageSpend(rs []Record) (float64, bool) {
	var spend, alloc float64
	for i := range rs {
		spend += rs[i].Spend
		alloc += rs[i].Allocataires
	}
	return ratio(spend, alloc)
}

// AllowanceAverage is the mean daily allowance weighted by compensated
// recipients, falling back to allocataires when a row has none.
func AllowanceAverage(rs []Record) (float64, bool) {
	var sum, weights float64
	for i := range rs {
		w := rs[i].Compensated
		if w == 0 {
			w = rs[i].Allocataires
		}
		sum += rs[i].DailyAllowance * w
		weights += w
	}
	return ratio(sum, weights)
}

// Profile describes how allocataires are compensated, in percent. The
// three shares use different populations as denominators and are not
// expected to add up to 100.
type Profile struct {
	// WorkingWhileCompensated is over allocataires.
	WorkingWhileCompensated float64 `json:"travail_indemnises"`
	// InTraining (AREF + ASP) is over allocataires.
	InTraining float64 `json:"formation"`
	// CompensatedWithoutActivity is over compensated recipients.
	CompensatedWithoutActivity float64 `json:"indemnises_sans_activite"`
}

// ProfileOf computes the compensation profile. ok is false for empty input.
func ProfileOf(rs []Record) (Profile, bool) {
	var alloc, compensated, working, training float64
	for i := range rs {
		r := &rs[i]
		alloc += r.Allocataires
		compensated += r.Compensated
		working += r.WorkingShareCompensated * r.Allocataires
		training += r.TrainingAREF + r.TrainingASP
	}

	var p Profile
	p.WorkingWhileCompensated, _ = ratio(working*100, alloc)
	p.InTraining, _ = ratio(training*100, alloc)
	p.CompensatedWithoutActivity, _ = ratio((compensated-working)*100, compensated)
	return p, len(rs) > 0
}

// Ranked is a grouping key with its summed measure.
type Ranked struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// GroupSum sums m per key, in first-encountered key order.
func GroupSum(rs []Record, key KeyFunc, m Measure) []Ranked {
	pos := make(map[string]int)
	var out []Ranked
	for i := range rs {
		k := key(&rs[i])
		idx, ok := pos[k]
		if !ok {
			idx = len(out)
			pos[k] = idx
			out = append(out, Ranked{Key: k})
		}
		out[idx].Value += m(&rs[i])
	}
	return out
}

// TopEntity returns the key with the largest summed measure. On a tie the
// first key encountered wins.
func TopEntity(rs []Record, key KeyFunc, m Measure) (Ranked, bool) {
	groups := GroupSum(rs, key, m)
	if len(groups) == 0 {
		return Ranked{}, false
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.Value > best.Value {
			best = g
		}
	}
	return best, true
}

// OtherLabel names the bucket holding everything past the top entries.
const OtherLabel = "Autres"

// TopNWithOther sums spend per department (department rows only), sorts
// descending and keeps the first n verbatim. The rest is folded into one
// trailing OtherLabel entry, omitted when nothing remains. Equal values
// keep first-seen order.
func TopNWithOther(rs []Record, n int) []Ranked {
	groups := GroupSum(DepartmentRows(rs), KeyDepartment, MeasureSpend)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value > groups[j].Value
	})
	if n < 0 {
		n = 0
	}
	if len(groups) <= n {
		return groups
	}

	var rest float64
	for _, g := range groups[n:] {
		rest += g.Value
	}
	out := make([]Ranked, 0, n+1)
	out = append(out, groups[:n]...)
	return append(out, Ranked{Key: OtherLabel, Value: rest})
}

// Series is a per-period time series: Values[k][i] is measure k at
// Labels[i]. Labels sort ascending, which is chronological for YYYY-MM keys.
type Series struct {
	Labels []string
	Values [][]float64
}

// Len returns the number of periods.
func (s Series) Len() int {
	return len(s.Labels)
}

// PeriodSeries sums each measure per period.
func PeriodSeries(rs []Record, measures ...Measure) Series {
	labels, rows := groupByPeriod(rs)
	s := Series{Labels: labels, Values: make([][]float64, len(measures))}
	for k, m := range measures {
		s.Values[k] = make([]float64, len(labels))
		for i, label := range labels {
			for _, r := range rows[label] {
				s.Values[k][i] += m(r)
			}
		}
	}
	return s
}

// MeanSeries averages a measure per period over the rows of that period.
func MeanSeries(rs []Record, m Measure) Series {
	labels, rows := groupByPeriod(rs)
	values := make([]float64, len(labels))
	for i, label := range labels {
		var sum float64
		for _, r := range rows[label] {
			sum += m(r)
		}
		values[i], _ = ratio(sum, float64(len(rows[label])))
	}
	return Series{Labels: labels, Values: [][]float64{values}}
}

func groupByPeriod(rs []Record) ([]string, map[string][]*Record) {
	rows := make(map[string][]*Record)
	labels := make([]string, 0)
	for i := range rs {
		r := &rs[i]
		if !r.HasPeriod() {
			continue
		}
		if _, ok := rows[r.Period]; !ok {
			labels = append(labels, r.Period)
		}
		rows[r.Period] = append(rows[r.Period], r)
	}
	sort.Strings(labels)
	return labels, rows
}

// RollingWindow is the number of trailing periods in the flow averages.
const RollingWindow = 12

// TrailingAverage averages the last n periods of every measure of s. With
// fewer than n periods it averages what exists; with none, ok is false.
func TrailingAverage(s Series, n int) ([]float64, bool) {
	out := make([]float64, len(s.Values))
	if s.Len() == 0 || n <= 0 {
		return out, false
	}
	start := s.Len() - n
	if start < 0 {
		start = 0
	}
	count := float64(s.Len() - start)
	for k, values := range s.Values {
		var sum float64
		for _, v := range values[start:] {
			sum += v
		}
		out[k] = sum / count
	}
	return out, true
}

// MapFeatures aggregates allocataires per department onto department
// geometries. Rows without a department, "Total" rollups and rows without
// a GeoJSON Feature are skipped. Each output is a copy of the first
// geometry seen for the department carrying nom and nb_alloc in its
// properties; the stored geometry is left untouched. Output follows first
// appearance.
func MapFeatures(rs []Record) []Feature {
	type entry struct {
		geometry Feature
		alloc    float64
	}
	pos := make(map[string]int)
	var names []string
	var entries []entry

	for i := range rs {
		r := &rs[i]
		if !r.IsDepartmentRow() || !r.Geometry.IsFeature() {
			continue
		}
		idx, ok := pos[r.Department]
		if !ok {
			idx = len(entries)
			pos[r.Department] = idx
			names = append(names, r.Department)
			entries = append(entries, entry{geometry: r.Geometry})
		}
		entries[idx].alloc += r.Allocataires
	}

	out := make([]Feature, 0, len(entries))
	for i, e := range entries {
		out = append(out, withProperties(e.geometry, names[i], e.alloc))
	}
	return out
}

func withProperties(geometry Feature, name string, alloc float64) Feature {
	f := make(Feature, len(geometry)+1)
	for k, v := range geometry {
		f[k] = v
	}
	props := make(map[string]any)
	if existing, ok := geometry["properties"].(map[string]any); ok {
		for k, v := range existing {
			props[k] = v
		}
	}
	props["nom"] = name
	props["nb_alloc"] = alloc
	f["properties"] = props
	return f
}

// ChoroplethColor maps an allocataires count to its fill color.
func ChoroplethColor(v float64) string {
	switch {
	case v > 50000:
		return "#08306b"
	case v > 30000:
		return "#08519c"
	case v > 15000:
		return "#2171b5"
	case v > 8000:
		return "#4292c6"
	case v > 4000:
		return "#6baed6"
	case v > 2000:
		return "#9ecae1"
	case v > 1000:
		return "#c6dbef"
	default:
		return "#eff3ff"
	}
}

func ratio(num, den float64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return num / den, true
}
