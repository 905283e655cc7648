package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DistrictSummary is one reduced report-mode row: quantities issued for
// a district today and across the whole season.
type DistrictSummary struct {
	DistrictName  string
	TodayQuantity decimal.Decimal
	TotalQuantity decimal.Decimal
}

// FarmerSummary is one reduced issue-mode row per farmer. Area keeps the
// first positive value observed for the farmer; QuantityPerArea is zero
// whenever Area is zero.
type FarmerSummary struct {
	FarmerName      string
	Quantity        decimal.Decimal
	Area            decimal.Decimal
	QuantityPerArea decimal.Decimal
}

// DistrictSnapshotRow is the persisted form of a DistrictSummary inside
// a daily snapshot document.
type DistrictSnapshotRow struct {
	DistrictName  string  `bson:"district_name" json:"district_name"`
	TodayQuantity float64 `bson:"today_quantity" json:"today_quantity"`
	TotalQuantity float64 `bson:"total_quantity" json:"total_quantity"`
}

// DailySnapshot is the nightly by-district report for one warehouse as
// stored in MongoDB and mirrored to the spreadsheet.
type DailySnapshot struct {
	Date          time.Time             `bson:"date" json:"date"`
	WarehouseID   int                   `bson:"warehouse_id" json:"warehouse_id"`
	WarehouseName string                `bson:"warehouse_name" json:"warehouse_name"`
	Rows          []DistrictSnapshotRow `bson:"rows" json:"rows"`
	TodayTotal    float64               `bson:"today_total" json:"today_total"`
	SeasonTotal   float64               `bson:"season_total" json:"season_total"`
	CreatedAt     time.Time             `bson:"created_at" json:"created_at"`
}
