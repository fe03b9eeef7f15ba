// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

// KPI is a display-ready tile value. When OK is false Text holds the
// no-data placeholder and Value is 0.
type KPI struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
	OK    bool    `json:"ok"`
}

func kpi(v float64, ok bool, format func(float64) string, placeholder string) KPI {
	if !ok {
		return KPI{Text: placeholder}
	}
	return KPI{Value: v, Text: format(v), OK: true}
}

// ChartDataset is one series of a chart, shaped for Chart.js.
type ChartDataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

// ChartSeries is the plain-data input of a chart adapter.
type ChartSeries struct {
	Type     string         `json:"type"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

func emptyChart(kind string) ChartSeries {
	return ChartSeries{Type: kind, Labels: []string{}, Datasets: []ChartDataset{}}
}

// Chart colors.
const (
	colorBlue        = "rgb(0, 84, 164)"
	colorTeal        = "rgb(0, 161, 154)"
	colorPink        = "rgb(255, 99, 132)"
	colorBlueFill    = "rgba(0, 84, 164, 0.6)"
	curveTension     = 0.1
	labelSpend       = "Dépenses (€)"
	labelWorkShare   = "Part Travail (%)"
	labelOpened      = "Ouvertures de droits"
	labelEnded       = "Fins de droits"
	profileWorking   = "Travail + indemnisés"
	profileTraining  = "En formation (AREF + ASP)"
	profileNoWorking = "Indemnisés sans activité"
)

var profileColors = []string{
	"rgba(0, 84, 164, 0.7)",
	"rgba(0, 161, 154, 0.7)",
	"rgba(255, 127, 50, 0.7)",
}

// SpendChart is the spend per period line chart over department rows.
func SpendChart(rs []Record) ChartSeries {
	s := PeriodSeries(DepartmentRows(rs), MeasureSpend)
	if s.Len() == 0 {
		return emptyChart("line")
	}
	return ChartSeries{
		Type:   "line",
		Labels: s.Labels,
		Datasets: []ChartDataset{{
			Label:       labelSpend,
			Data:        s.Values[0],
			BorderColor: colorTeal,
			Tension:     curveTension,
		}},
	}
}

// WorkShareChart is the mean of part_travail per period, in percent.
func WorkShareChart(rs []Record) ChartSeries {
	s := MeanSeries(DepartmentRows(rs), MeasureWorkingShare)
	if s.Len() == 0 {
		return emptyChart("bar")
	}
	data := make([]float64, s.Len())
	for i, v := range s.Values[0] {
		data[i] = v * 100
	}
	return ChartSeries{
		Type:   "bar",
		Labels: s.Labels,
		Datasets: []ChartDataset{{
			Label:           labelWorkShare,
			Data:            data,
			BackgroundColor: colorBlueFill,
		}},
	}
}

// ProfileChart renders the three compensation shares as bars.
func ProfileChart(p Profile, ok bool) ChartSeries {
	if !ok {
		return emptyChart("bar")
	}
	return ChartSeries{
		Type:   "bar",
		Labels: []string{profileWorking, profileTraining, profileNoWorking},
		Datasets: []ChartDataset{{
			Data:            []float64{p.WorkingWhileCompensated, p.InTraining, p.CompensatedWithoutActivity},
			BackgroundColor: profileColors,
		}},
	}
}

// SpendPieChart is the top-10 + "Autres" department spend pie.
func SpendPieChart(rs []Record) ChartSeries {
	ranked := TopNWithOther(rs, 10)
	if len(ranked) == 0 {
		return emptyChart("pie")
	}
	labels := make([]string, len(ranked))
	data := make([]float64, len(ranked))
	for i, r := range ranked {
		labels[i] = r.Key
		data[i] = r.Value
	}
	return ChartSeries{Type: "pie", Labels: labels, Datasets: []ChartDataset{{Data: data}}}
}

// FluxChart plots rights opened against rights ended per period.
func FluxChart(s Series) ChartSeries {
	if s.Len() == 0 {
		return emptyChart("line")
	}
	return ChartSeries{
		Type:   "line",
		Labels: s.Labels,
		Datasets: []ChartDataset{
			{Label: labelOpened, Data: s.Values[0], BorderColor: colorBlue, Tension: curveTension},
			{Label: labelEnded, Data: s.Values[1], BorderColor: colorPink, Tension: curveTension},
		},
	}
}

// MapLayer is the input of the choropleth adapter.
type MapLayer struct {
	Features []Feature `json:"features"`
	// Colors holds the fill color of each feature, by department name.
	Colors map[string]string `json:"colors"`
}

// BuildMapLayer aggregates map features and assigns choropleth colors.
func BuildMapLayer(rs []Record) MapLayer {
	features := MapFeatures(rs)
	colors := make(map[string]string, len(features))
	for _, f := range features {
		props, _ := f["properties"].(map[string]any)
		name, _ := props["nom"].(string)
		alloc, _ := props["nb_alloc"].(float64)
		colors[name] = ChoroplethColor(alloc)
	}
	return MapLayer{Features: features, Colors: colors}
}
