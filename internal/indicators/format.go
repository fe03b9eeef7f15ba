// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"math"
	"strconv"
	"strings"
)

const (
	// NoData is displayed in place of a KPI that has nothing to show.
	NoData = "—"

	// NoDataPercent is NoData for percentage tiles.
	NoDataPercent = "— %"

	// groupSeparator is the fr-FR thousands separator (narrow no-break space).
	groupSeparator = "\u202f"

	// currencySpacing separates the amount from the euro sign (no-break space).
	currencySpacing = "\u00a0"
)

// FormatInt formats a count the fr-FR way: rounded half up, thousands
// grouped, no decimals. 1234567 -> "1 234 567".
func FormatInt(v float64) string {
	return groupThousands(math.Floor(finite(v) + 0.5))
}

// FormatEuro formats an amount in whole euros: 1234.6 -> "1 235 €".
func FormatEuro(v float64) string {
	return groupThousands(math.Round(finite(v))) + currencySpacing + "€"
}

// FormatPercent formats a percentage with one decimal and a comma:
// 12.345 -> "12,3 %".
func FormatPercent(v float64) string {
	return strings.Replace(toFixed1(finite(v)), ".", ",", 1) + " %"
}

func groupThousands(v float64) string {
	neg := v < 0
	digits := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)

	var b strings.Builder
	if neg && digits != "0" {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(groupSeparator)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// toFixed1 rounds to one decimal. Exact binary ties (x.25, x.75) round
// away from zero; everything else rounds on the exact binary value.
func toFixed1(v float64) string {
	q := v * 4
	if q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
