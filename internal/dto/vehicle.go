package dto

import (
	"github.com/carrentpro/crp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVehicleRequest defines the data needed to add a vehicle.
type CreateVehicleRequest struct {
	Brand       string          `json:"brand" binding:"required,max=50"`
	Model       string          `json:"model" binding:"required,max=100"`
	Year        int             `json:"year" binding:"required,gte=2000,lte=2030"`
	Color       string          `json:"color" binding:"required,max=20"`
	PricePerDay decimal.Decimal `json:"pricePerDay" binding:"required"`
	Description string          `json:"description" binding:"required,max=1000"`
	ImageURL    string          `json:"imageURL"`
	BranchID    string          `json:"branchID" binding:"required"`
}

// UpdateVehicleRequest defines the fields that may change on a vehicle.
type UpdateVehicleRequest struct {
	Brand       *string          `json:"brand"`
	Model       *string          `json:"model"`
	Year        *int             `json:"year"`
	Color       *string          `json:"color"`
	PricePerDay *decimal.Decimal `json:"pricePerDay"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageURL"`
	BranchID    *string          `json:"branchID"`
}

// SearchVehiclesParams filters the vehicle listing.
type SearchVehiclesParams struct {
	Term     string `form:"q"`
	BranchID string `form:"branchID"`
}

// VehicleResponse is the client-facing view of a vehicle.
type VehicleResponse struct {
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
}

// ToVehicleResponse converts a domain.Vehicle to a VehicleResponse DTO.
func ToVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:   v.VehicleID,
		Brand:       v.Brand,
		Model:       v.Model,
		Year:        v.Year,
		Color:       v.Color,
		PricePerDay: v.PricePerDay,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		IsAvailable: v.IsAvailable,
		BranchID:    v.BranchID,
	}
}

// VehicleStockResponse is one per-branch stock row of a vehicle.
type VehicleStockResponse struct {
	StockID           string `json:"stockID"`
	VehicleID         string `json:"vehicleID"`
	BranchID          string `json:"branchID"`
	Quantity          int    `json:"quantity"`
	AvailableQuantity int    `json:"availableQuantity"`
}

// ListVehicleStockResponse wraps a vehicle's stock listing.
type ListVehicleStockResponse struct {
	Stock []VehicleStockResponse `json:"stock"`
}

// ToListVehicleStockResponse converts domain stock rows to the list DTO.
func ToListVehicleStockResponse(stock []domain.VehicleStock) ListVehicleStockResponse {
	out := make([]VehicleStockResponse, len(stock))
	for i, s := range stock {
		out[i] = VehicleStockResponse{
			StockID:           s.StockID,
			VehicleID:         s.VehicleID,
			BranchID:          s.BranchID,
			Quantity:          s.Quantity,
			AvailableQuantity: s.AvailableQuantity,
		}
	}
	return ListVehicleStockResponse{Stock: out}
}

// ListVehiclesResponse wraps a vehicle listing.
type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// ToListVehiclesResponse converts domain vehicles to the list DTO.
func ToListVehiclesResponse(vehicles []domain.Vehicle) ListVehiclesResponse {
	out := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		out[i] = ToVehicleResponse(&vehicles[i])
	}
	return ListVehiclesResponse{Vehicles: out}
}
