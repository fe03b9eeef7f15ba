// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"math"
)

// Inputs are the filtered slices handed to presenters on each pass.
type Inputs struct {
	KPI  []Record
	Map  []Record
	Flux []Record
}

// FilterInputs runs every flavor of the filter once.
func FilterInputs(records []Record, c Criteria) Inputs {
	return Inputs{
		KPI:  Filter(records, c, FlavorKPI),
		Map:  Filter(records, c, FlavorMap),
		Flux: Filter(records, c, FlavorFlux),
	}
}

// Presenter turns filtered inputs into the plain output of one view.
type Presenter interface {
	Name() string
	Present(in Inputs) any
}

// View names.
const (
	ViewDashboard  = "dashboard"
	ViewIndicators = "indicators"
)

// DashboardView is the map + KPI page.
type DashboardView struct {
	TotalAllocataires KPI         `json:"total_alloc"`
	TotalSpend        KPI         `json:"total_depense"`
	Map               MapLayer    `json:"map"`
	SpendChart        ChartSeries `json:"chart_depense"`
	WorkShareChart    ChartSeries `json:"chart_part_travail"`
}

// DashboardPresenter builds DashboardView.
type DashboardPresenter struct{}

// Name implements Presenter.
func (DashboardPresenter) Name() string { return ViewDashboard }

// Present implements Presenter.
func (DashboardPresenter) Present(in Inputs) any {
	totals, ok := SumTotals(in.KPI)
	return DashboardView{
		TotalAllocataires: kpi(totals.Allocataires, ok, FormatInt, NoData),
		TotalSpend:        kpi(totals.Spend, ok, FormatEuro, NoData),
		Map:               BuildMapLayer(in.Map),
		SpendChart:        SpendChart(in.Map),
		WorkShareChart:    WorkShareChart(in.Map),
	}
}

// IndicatorsView is the deep-dive page.
type IndicatorsView struct {
	AverageSpend     KPI             `json:"depense_moyenne"`
	AverageAllowance KPI             `json:"aj_moyenne"`
	Profile          ProfileView     `json:"profil"`
	Territories      TerritoriesView `json:"territoires"`
	SpendPie         ChartSeries     `json:"pie_depense_dept"`
	Flux             FluxView        `json:"flux"`
}

// ProfileView holds the compensation profile tiles and chart.
type ProfileView struct {
	WorkingWhileCompensated    KPI         `json:"travail_indemnises"`
	InTraining                 KPI         `json:"formation"`
	CompensatedWithoutActivity KPI         `json:"indemnises_sans_activite"`
	Chart                      ChartSeries `json:"chart"`
}

// TerritoriesView ranks regions and departments.
type TerritoriesView struct {
	TopRegion         KPI    `json:"region_plus_aidee"`
	TopDepartment     KPI    `json:"dept_plus_aide"`
	CostliestDept     KPI    `json:"dept_plus_couteux"`
	CostliestDeptText string `json:"texte_dept_plus_couteux"`
}

// FluxView holds the trailing averages of rights opened and ended.
type FluxView struct {
	OpenedAverage KPI         `json:"od_moyennes"`
	EndedAverage  KPI         `json:"fdd_moyennes"`
	Chart         ChartSeries `json:"chart"`
}

// IndicatorsPresenter builds IndicatorsView.
type IndicatorsPresenter struct{}

// Name implements Presenter.
func (IndicatorsPresenter) Name() string { return ViewIndicators }

// Present implements Presenter.
func (IndicatorsPresenter) Present(in Inputs) any {
	spend, spendOK := AverageSpend(in.KPI)
	allowance, allowanceOK := AllowanceAverage(in.KPI)
	return IndicatorsView{
		AverageSpend:     kpi(spend, spendOK, FormatEuro, NoData),
		AverageAllowance: kpi(allowance, allowanceOK, FormatEuro, NoData),
		Profile:          profileView(in.KPI),
		Territories:      territoriesView(in.KPI),
		SpendPie:         SpendPieChart(in.KPI),
		Flux:             fluxView(in.Flux),
	}
}

func profileView(rs []Record) ProfileView {
	p, ok := ProfileOf(rs)
	return ProfileView{
		WorkingWhileCompensated:    kpi(p.WorkingWhileCompensated, ok, FormatPercent, NoDataPercent),
		InTraining:                 kpi(p.InTraining, ok, FormatPercent, NoDataPercent),
		CompensatedWithoutActivity: kpi(p.CompensatedWithoutActivity, ok, FormatPercent, NoDataPercent),
		Chart:                      ProfileChart(p, ok),
	}
}

func territoriesView(rs []Record) TerritoriesView {
	var v TerritoriesView

	region, ok := TopEntity(rs, KeyRegion, MeasureAllocataires)
	v.TopRegion = rankedKPI(region, ok, func(r Ranked) string {
		return r.Key + " (" + FormatInt(r.Value) + " allocataires)"
	})

	dept, ok := TopEntity(rs, KeyDepartment, MeasureAllocataires)
	v.TopDepartment = rankedKPI(dept, ok, func(r Ranked) string {
		return r.Key + " (" + FormatInt(r.Value) + " allocataires)"
	})

	costly, ok := TopEntity(rs, KeyDepartment, MeasureSpend)
	v.CostliestDept = rankedKPI(costly, ok, func(r Ranked) string {
		return r.Key + " (" + FormatEuro(r.Value) + ")"
	})
	if ok {
		v.CostliestDeptText = "Département le plus coûteux : " + v.CostliestDept.Text
	}
	return v
}

func rankedKPI(r Ranked, ok bool, text func(Ranked) string) KPI {
	if !ok {
		return KPI{Text: NoData}
	}
	return KPI{Value: r.Value, Text: text(r), OK: true}
}

func fluxView(rs []Record) FluxView {
	s := PeriodSeries(DepartmentRows(rs), MeasureRightsOpened, MeasureRightsEnded)
	avg, ok := TrailingAverage(s, RollingWindow)
	return FluxView{
		OpenedAverage: kpi(math.Floor(avg[0]+0.5), ok, FormatInt, NoData),
		EndedAverage:  kpi(math.Floor(avg[1]+0.5), ok, FormatInt, NoData),
		Chart:         FluxChart(s),
	}
}
