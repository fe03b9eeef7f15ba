// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

// OptionsView renders the option list and current selection of one
// dimension. The engine calls it after every change that can affect that
// dimension; rendering surfaces implement it, the core never renders.
type OptionsView interface {
	Render(dim Dimension, options []string, selected Selection)
}

// Criteria is the selection of every dimension at one point in time.
type Criteria struct {
	Region     Selection `json:"region"`
	Department Selection `json:"departement"`
	Year       Selection `json:"year"`
	Month      Selection `json:"month"`
}

// Get returns the selection of dim.
func (c *Criteria) Get(dim Dimension) Selection {
	switch dim {
	case DimRegion:
		return c.Region
	case DimDepartment:
		return c.Department
	case DimYear:
		return c.Year
	default:
		return c.Month
	}
}

func (c *Criteria) put(dim Dimension, sel Selection) {
	switch dim {
	case DimRegion:
		c.Region = sel
	case DimDepartment:
		c.Department = sel
	case DimYear:
		c.Year = sel
	default:
		c.Month = sel
	}
}

// State is the cascading filter state. Department options depend on the
// region selection and month options on the year selection; the
// dependency is one-directional.
type State struct {
	index    *Index
	criteria Criteria
}

// NewState returns a state with every dimension set to "all".
func NewState(ix *Index) *State {
	if ix == nil {
		ix = BuildIndex(nil)
	}
	return &State{index: ix}
}

// Criteria returns the current selections.
func (s *State) Criteria() Criteria {
	return s.criteria
}

// Selection returns the current selection of dim.
func (s *State) Selection(dim Dimension) Selection {
	return s.criteria.Get(dim)
}

// Options returns the values currently selectable for dim, in display
// order: regions and departments ascending, years and months descending.
func (s *State) Options(dim Dimension) []string {
	switch dim {
	case DimRegion:
		return s.index.Regions()
	case DimDepartment:
		return s.index.DepartmentsFor(s.criteria.Region)
	case DimYear:
		return s.index.Years()
	default:
		return s.index.MonthsFor(s.criteria.Year)
	}
}

// Set normalizes raw, keeps only currently valid options and applies the
// cascade. It returns every dimension whose options or selection may have
// changed.
func (s *State) Set(dim Dimension, raw []string) []Dimension {
	sel := Normalize(raw).restrict(s.Options(dim))
	s.criteria.put(dim, sel)

	switch dim {
	case DimRegion:
		s.cascade(DimDepartment)
		return []Dimension{DimRegion, DimDepartment}
	case DimYear:
		s.cascade(DimMonth)
		return []Dimension{DimYear, DimMonth}
	default:
		return []Dimension{dim}
	}
}

// SetRegion selects regions and prunes departments outside them.
func (s *State) SetRegion(raw ...string) { s.Set(DimRegion, raw) }

// SetDepartment selects departments.
func (s *State) SetDepartment(raw ...string) { s.Set(DimDepartment, raw) }

// SetYear selects years and prunes months outside them.
func (s *State) SetYear(raw ...string) { s.Set(DimYear, raw) }

// SetMonth selects period keys.
func (s *State) SetMonth(raw ...string) { s.Set(DimMonth, raw) }

// Reset puts every dimension back to "all".
func (s *State) Reset() {
	s.criteria = Criteria{}
}

// cascade prunes the dependent dimension to its recomputed options.
func (s *State) cascade(dependent Dimension) {
	sel := s.criteria.Get(dependent).restrict(s.Options(dependent))
	s.criteria.put(dependent, sel)
}

// rebind switches to a new index and drops selections it no longer
// supports.
func (s *State) rebind(ix *Index) {
	s.index = ix
	s.criteria.Region = s.criteria.Region.restrict(ix.Regions())
	s.criteria.Year = s.criteria.Year.restrict(ix.Years())
	s.cascade(DimDepartment)
	s.cascade(DimMonth)
}
