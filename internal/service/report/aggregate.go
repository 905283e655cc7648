package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uzagro/omborbot/internal/domain/models"
)

// DistrictRows reduces raw movements into one row per district, summing
// the season total and, for records dated today, the today total. The
// today key is resolved once per call so a slow request cannot straddle
// midnight inside a single aggregation. Rows come back sorted by
// district name; the grand-total row is the renderer's job.
func DistrictRows(records []models.MovementRecord, today time.Time) []models.DistrictSummary {
	todayKey := DayKey(today)
	grouped := make(map[string]*models.DistrictSummary)

	for _, record := range records {
		name := displayName(record.DistrictName)
		row, ok := grouped[name]
		if !ok {
			row = &models.DistrictSummary{DistrictName: name}
			grouped[name] = row
		}
		row.TotalQuantity = row.TotalQuantity.Add(record.Quantity)
		if NormalizeDate(record.Date).SortKey == todayKey {
			row.TodayQuantity = row.TodayQuantity.Add(record.Quantity)
		}
	}

	rows := make([]models.DistrictSummary, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DistrictName < rows[j].DistrictName })
	return rows
}

// FarmerRows reduces raw movements into one row per farmer. Quantity is
// summed; area keeps the first positive value seen for the farmer; the
// quantity-per-area ratio is computed only after the whole fold, and is
// zero whenever area is zero.
func FarmerRows(records []models.MovementRecord) []models.FarmerSummary {
	grouped := make(map[string]*models.FarmerSummary)

	for _, record := range records {
		name := displayName(record.FarmerName)
		row, ok := grouped[name]
		if !ok {
			row = &models.FarmerSummary{FarmerName: name}
			grouped[name] = row
		}
		row.Quantity = row.Quantity.Add(record.Quantity)
		if !row.Area.IsPositive() && record.Area.Valid && record.Area.Decimal.IsPositive() {
			row.Area = record.Area.Decimal
		}
	}

	rows := make([]models.FarmerSummary, 0, len(grouped))
	for _, row := range grouped {
		if row.Area.IsPositive() {
			row.QuantityPerArea = row.Quantity.Div(row.Area)
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FarmerName < rows[j].FarmerName })
	return rows
}

// GrandTotal sums today and season quantities across all district rows.
func GrandTotal(rows []models.DistrictSummary) (today, season decimal.Decimal) {
	for _, row := range rows {
		today = today.Add(row.TodayQuantity)
		season = season.Add(row.TotalQuantity)
	}
	return today, season
}

func displayName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "-"
	}
	return trimmed
}
