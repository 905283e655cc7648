package models

import "github.com/shopspring/decimal"

// Warehouse is one selectable storage location returned by the data API.
type Warehouse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// District is one selectable district filter for a warehouse.
type District struct {
	ID   int    `json:"district_id"`
	Name string `json:"district_name"`
}

// Product is one selectable product filter within a warehouse section.
type Product struct {
	ID   int    `json:"product_id"`
	Name string `json:"product_name"`
}

// MovementRecord is a single raw inventory movement as delivered by the
// data API. The date field is untrusted text; names may be absent and
// default to "-" during aggregation, never here.
type MovementRecord struct {
	Date           string              `json:"date"`
	DistrictName   string              `json:"district_name"`
	FarmerName     string              `json:"farmer_name"`
	ProductName    string              `json:"product_name"`
	InvoiceNumber  string              `json:"invoice_number"`
	DocumentNumber string              `json:"number"`
	BagCount       int                 `json:"bag_count"`
	Quantity       decimal.Decimal     `json:"quantity"`
	Area           decimal.NullDecimal `json:"maydon"`
}

// WarehouseTotals carries the running in/out/balance figures for the
// current filter combination.
type WarehouseTotals struct {
	TotalIn  decimal.Decimal `json:"total_in"`
	TotalOut decimal.Decimal `json:"total_out"`
	Balance  decimal.Decimal `json:"balance"`
}

// FarmerBalance is one row of the farmer balance listing.
type FarmerBalance struct {
	INN      string          `json:"inn"`
	Name     string          `json:"name"`
	District string          `json:"district"`
	Balance  decimal.Decimal `json:"balance"`
}

// ContractSummary is one row of the contracts summary listing.
type ContractSummary struct {
	Region   string          `json:"region"`
	District string          `json:"district"`
	Massive  string          `json:"massive"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}
