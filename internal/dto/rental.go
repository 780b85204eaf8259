package dto

import (
	"time"

	"github.com/carrentpro/crp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRentalRequest is a booking attempt for a vehicle.
// TotalPrice is computed server-side and never accepted from the client.
type CreateRentalRequest struct {
	VehicleID  string    `json:"vehicleID" binding:"required"`
	ReturnDate time.Time `json:"returnDate" binding:"required"`
}

// RentalResponse is the client-facing view of a rental.
type RentalResponse struct {
	RentalID   string          `json:"rentalID"`
	UserID     string          `json:"userID"`
	VehicleID  *string         `json:"vehicleID,omitempty"`
	RentalDate time.Time       `json:"rentalDate"`
	ReturnDate time.Time       `json:"returnDate"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
}

// ToRentalResponse converts a domain.Rental to a RentalResponse DTO.
func ToRentalResponse(r *domain.Rental) RentalResponse {
	return RentalResponse{
		RentalID:   r.RentalID,
		UserID:     r.UserID,
		VehicleID:  r.VehicleID,
		RentalDate: r.RentalDate,
		ReturnDate: r.ReturnDate,
		TotalPrice: r.TotalPrice,
		Status:     string(r.Status),
	}
}

// ListRentalsResponse wraps a rental listing.
type ListRentalsResponse struct {
	Rentals []RentalResponse `json:"rentals"`
}

// ToListRentalsResponse converts domain rentals to the list DTO.
func ToListRentalsResponse(rentals []domain.Rental) ListRentalsResponse {
	out := make([]RentalResponse, len(rentals))
	for i := range rentals {
		out[i] = ToRentalResponse(&rentals[i])
	}
	return ListRentalsResponse{Rentals: out}
}

// EligibilityResponse is the preflight answer for "can this user rent".
type EligibilityResponse struct {
	CanRent bool   `json:"canRent"`
	Message string `json:"message,omitempty"`
}
