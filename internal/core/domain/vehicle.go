package domain

import "github.com/shopspring/decimal"

// Vehicle is a rentable car belonging to a branch.
//
// IsAvailable is false whenever an active rental references the vehicle and may
// be restored to true only when no active rental remains. The flag is flipped by
// the rental ledger inside the same transaction as the rental row it guards.
type Vehicle struct {
	VehicleID   string          `json:"vehicleID"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Year        int             `json:"year"`
	Color       string          `json:"color"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageURL"`
	IsAvailable bool            `json:"isAvailable"`
	BranchID    string          `json:"branchID"`
	AuditFields
}

// VehicleStock tracks per-branch stock counts for a vehicle model. Stock rows
// are removed together with the vehicle on force delete.
type VehicleStock struct {
	StockID           string `json:"stockID"`
	VehicleID         string `json:"vehicleID"`
	BranchID          string `json:"branchID"`
	Quantity          int    `json:"quantity"`
	AvailableQuantity int    `json:"availableQuantity"`
}
