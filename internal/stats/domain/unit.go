package domain

import (
	"math"
	"strconv"
)

// Unit is a named display unit plus its conversion factor relative to
// kilograms. Conversion is always display = kg / KgPerUnit; storage stays
// in canonical kilograms.
type Unit struct {
	Label     string
	KgPerUnit float64
}

var (
	UnitKilograms = Unit{Label: "Kilograms (kg)", KgPerUnit: 1}
	UnitPounds    = Unit{Label: "Pounds (lb)", KgPerUnit: 0.45359237}
)

// NoValueSentinel marks a missing measurement. It never participates in
// totals; summation treats it as 0.
const NoValueSentinel = "-"

// ConvertWeight converts a canonical kg value into the unit's display
// string with exactly 2 decimals, rounding half away from zero. NaN input
// yields the sentinel.
func ConvertWeight(kg float64, unit Unit) string {
	if math.IsNaN(kg) {
		return NoValueSentinel
	}

	factor := unit.KgPerUnit
	if factor == 0 {
		// categories without a factor count as kilograms
		factor = 1
	}

	return formatTwoDecimals(kg / factor)
}

// ToCanonicalKg is the inverse of ConvertWeight: a display-unit value
// entered by a user becomes canonical kg before it hits storage.
func ToCanonicalKg(displayValue float64, unit Unit) float64 {
	factor := unit.KgPerUnit
	if factor == 0 {
		factor = 1
	}
	return displayValue * factor
}

func formatTwoDecimals(v float64) string {
	scaled := math.Round(v*100) / 100
	return strconv.FormatFloat(scaled, 'f', 2, 64)
}
