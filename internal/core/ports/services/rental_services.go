package services

import (
	"context"
	"time"

	"github.com/carrentpro/crp_backend/internal/core/domain"
)

// RentalBookingSvc is the rental engine's write surface.
type RentalBookingSvc interface {
	// CreateRental runs the ordered eligibility checks and, when they pass,
	// books the vehicle atomically. The result is a tagged outcome; callers
	// must handle all three cases.
	CreateRental(ctx context.Context, userID, vehicleID string, returnDate time.Time) domain.RentalResult

	// CancelRental cancels a rental. Non-staff requesters must own the
	// rental. Returns false, without error, when the rental is missing, not
	// active, or owned by someone else.
	CancelRental(ctx context.Context, rentalID, requestingUserID string, asStaff bool) (bool, error)

	// CompleteRental marks a rental returned and restores the vehicle.
	// Staff only; role is enforced at the route.
	CompleteRental(ctx context.Context, rentalID, staffUserID string) (bool, error)
}

// RentalQuerySvc is the rental engine's read surface.
type RentalQuerySvc interface {
	// GetRentalByID retrieves a rental.
	GetRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error)

	// ListUserRentals retrieves a user's rentals, most recent first.
	ListUserRentals(ctx context.Context, userID string) ([]domain.Rental, error)

	// ListRentals retrieves all rentals (staff view).
	ListRentals(ctx context.Context) ([]domain.Rental, error)

	// ListActiveRentals retrieves rentals currently holding a vehicle.
	ListActiveRentals(ctx context.Context) ([]domain.Rental, error)

	// CheckEligibility is the pure-read preflight: same blacklist logic as
	// CreateRental plus the one-active-rental rule.
	CheckEligibility(ctx context.Context, userID string) (bool, string, error)

	// CanUserRentVehicle extends CheckEligibility with the per-vehicle
	// availability check.
	CanUserRentVehicle(ctx context.Context, userID, vehicleID string) (bool, error)
}

// RentalSvcFacade combines the rental engine interfaces.
type RentalSvcFacade interface {
	RentalBookingSvc
	RentalQuerySvc
}
