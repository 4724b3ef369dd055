package domain

import (
	"math"
	"sort"
	"time"

	"foodops-server/internal/infra/utils"
)

// StatRow is one canonical data point: a weight recorded for one entity
// (donor or category) on one calendar date. ValueKg is always kilograms.
type StatRow struct {
	Date      utils.Date
	EntityKey string
	ValueKg   float64
}

// RowValues maps an entity key to its canonical kg value within one
// displayed row.
type RowValues map[string]float64

// MonthRow is one aggregated row of the all-months table.
type MonthRow struct {
	Month   time.Month
	Label   string
	Values  RowValues
	TotalKg float64
}

// DateRow is one raw row of the single-month table.
type DateRow struct {
	Date    utils.Date
	Values  RowValues
	TotalKg float64
}

// TableMode selects between raw per-date rows and the per-month aggregate.
type TableMode string

const (
	TableModePerDate  TableMode = "per_date"
	TableModePerMonth TableMode = "per_month"
)

// AllMonths is the month filter sentinel that selects the per-month
// aggregate.
const AllMonths = 0

// ModeForMonth derives the table mode purely from the month filter.
func ModeForMonth(month int) TableMode {
	if month == AllMonths {
		return TableModePerMonth
	}
	return TableModePerDate
}

// AggregateByMonth buckets rows by calendar month. The output always has
// 12 rows, January through December, zero-filled for every key, no matter
// how sparse the input is. Year scoping happens at fetch time, not here.
func AggregateByMonth(rows []StatRow, keys []string) []MonthRow {
	result := make([]MonthRow, 12)
	for i := range result {
		month := time.Month(i + 1)
		values := make(RowValues, len(keys))
		for _, key := range keys {
			values[key] = 0
		}
		result[i] = MonthRow{
			Month:  month,
			Label:  month.String(),
			Values: values,
		}
	}

	for _, row := range rows {
		value := row.ValueKg
		if math.IsNaN(value) {
			value = 0
		}
		bucket := &result[int(row.Date.Month())-1]
		bucket.Values[row.EntityKey] += value
		bucket.TotalKg += value
	}

	return result
}

// GroupByDate shapes rows into per-date display rows, ordered by date.
// Every fetched date shows up even when all its values are zero; dropping
// empty rows is a separate, opt-in step.
func GroupByDate(rows []StatRow, keys []string) []DateRow {
	index := make(map[string]int)
	result := make([]DateRow, 0)

	for _, row := range rows {
		i, ok := index[row.Date.String()]
		if !ok {
			values := make(RowValues, len(keys))
			for _, key := range keys {
				values[key] = 0
			}
			result = append(result, DateRow{Date: row.Date, Values: values})
			i = len(result) - 1
			index[row.Date.String()] = i
		}

		value := row.ValueKg
		if math.IsNaN(value) {
			value = 0
		}
		result[i].Values[row.EntityKey] += value
		result[i].TotalKg += value
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date.Time)
	})
	return result
}

// BuildColumnTotals sums canonical kg per key across all displayed rows
// and converts exactly once at the end. Summing already-converted display
// strings would compound rounding error.
func BuildColumnTotals(rows []RowValues, keys []string, unit Unit) map[string]string {
	sums := make(map[string]float64, len(keys))
	for _, key := range keys {
		sums[key] = 0
	}

	for _, row := range rows {
		for _, key := range keys {
			value := row[key]
			if math.IsNaN(value) {
				continue
			}
			sums[key] += value
		}
	}

	result := make(map[string]string, len(keys))
	for _, key := range keys {
		result[key] = ConvertWeight(sums[key], unit)
	}
	return result
}

// GrandTotal sums every key of every row in canonical kg and converts
// once.
func GrandTotal(rows []RowValues, keys []string, unit Unit) string {
	var sum float64
	for _, row := range rows {
		for _, key := range keys {
			value := row[key]
			if math.IsNaN(value) {
				continue
			}
			sum += value
		}
	}
	return ConvertWeight(sum, unit)
}

// FilterNonEmptyRows drops rows whose every data column is zero. Used by
// the shift-categories and outreach tables; the incoming-stats table shows
// all dates unconditionally.
func FilterNonEmptyRows[R any](rows []R, values func(R) RowValues, columns []string) []R {
	result := make([]R, 0, len(rows))
	for _, row := range rows {
		rowValues := values(row)
		empty := true
		for _, column := range columns {
			if v, ok := rowValues[column]; ok && v != 0 && !math.IsNaN(v) {
				empty = false
				break
			}
		}
		if !empty {
			result = append(result, row)
		}
	}
	return result
}
