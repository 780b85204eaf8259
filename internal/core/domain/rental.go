package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RentalStatus is the lifecycle state of a rental.
type RentalStatus string

const (
	RentalPending   RentalStatus = "PENDING"
	RentalActive    RentalStatus = "ACTIVE"
	RentalCompleted RentalStatus = "COMPLETED"
	RentalCancelled RentalStatus = "CANCELLED"
)

// ErrInvalidTransition reports an attempted status change outside the
// transition table. It signals a programming error, not user input.
var ErrInvalidTransition = errors.New("invalid rental status transition")

// rentalTransitions is the full transition table. Only an active rental can
// move, and only to a terminal state.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalActive: {RentalCompleted, RentalCancelled},
}

// CanTransition reports whether a rental may move from one status to another.
func CanTransition(from, to RentalStatus) bool {
	for _, allowed := range rentalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Rental is a booking of a vehicle by a user for a date range.
//
// VehicleID is nullable so the rental history survives vehicle deletion.
// TotalPrice is computed by the rental engine, never taken from input.
type Rental struct {
	RentalID   string          `json:"rentalID"`
	UserID     string          `json:"userID"`
	VehicleID  *string         `json:"vehicleID,omitempty"`
	RentalDate time.Time       `json:"rentalDate"`
	ReturnDate time.Time       `json:"returnDate"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     RentalStatus    `json:"status"`
	AuditFields
}

// Transition moves the rental to a new status, enforcing the transition table.
func (r *Rental) Transition(to RentalStatus) error {
	if !CanTransition(r.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, to)
	}
	r.Status = to
	return nil
}

// IsOngoing reports whether the rental currently blocks its vehicle: status
// active and the return date not yet passed.
func (r *Rental) IsOngoing(now time.Time) bool {
	return r.Status == RentalActive && !r.ReturnDate.Before(now)
}
