// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

// Flavor selects the inclusion rules used by a family of consumers.
type Flavor int

const (
	// FlavorKPI drops rows without a department and "Total" rollups before
	// filtering, so department-scoped sums never double count.
	FlavorKPI Flavor = iota

	// FlavorMap applies the filters only; each consumer decides what to do
	// with "Total" rows.
	FlavorMap

	// FlavorFlux is FlavorMap without the month dimension. The
	// opened/ended rights series always spans every month of the selected
	// years.
	FlavorFlux
)

func (f Flavor) String() string {
	switch f {
	case FlavorKPI:
		return "kpi"
	case FlavorMap:
		return "map"
	case FlavorFlux:
		return "flux"
	default:
		return "unknown"
	}
}

// Filter returns the records of the given flavor that pass every active
// dimension of c. A dimension is active when it is not "all". Records
// without a period key are always excluded. The input is never modified.
func Filter(records []Record, c Criteria, flavor Flavor) []Record {
	regions := c.Region.set()
	depts := c.Department.set()
	years := c.Year.set()
	months := c.Month.set()
	if flavor == FlavorFlux {
		months = nil
	}

	out := make([]Record, 0, len(records))
	for i := range records {
		r := &records[i]
		if flavor == FlavorKPI && !r.IsDepartmentRow() {
			continue
		}
		if !r.HasPeriod() {
			continue
		}
		if years != nil && !has(years, r.Year()) {
			continue
		}
		if months != nil && !has(months, r.Period) {
			continue
		}
		if regions != nil && !has(regions, r.Region) {
			continue
		}
		if depts != nil && !has(depts, r.Department) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// DepartmentRows keeps rows that carry a department other than "Total".
func DepartmentRows(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for i := range records {
		if records[i].IsDepartmentRow() {
			out = append(out, records[i])
		}
	}
	return out
}

func has(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}
