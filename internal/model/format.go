package model

import "github.com/shopspring/decimal"

// FormatArea renders an area in m² with two decimals, rounding half away
// from zero the way the shop's paperwork does.
func FormatArea(area float64) string {
	return decimal.NewFromFloat(area).StringFixed(2)
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(1)
}

// RoundArea rounds an area to two decimals for JSON responses.
func RoundArea(area float64) float64 {
	f, _ := decimal.NewFromFloat(area).Round(2).Float64()
	return f
}
