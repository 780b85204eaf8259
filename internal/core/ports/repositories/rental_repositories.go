package repositories

import (
	"context"
	"time"

	"github.com/carrentpro/crp_backend/internal/core/domain"
)

// RentalReader defines read operations over the rental ledger.
type RentalReader interface {
	// FindRentalByID retrieves a rental by its ID.
	FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error)

	// FindRentalsByUser retrieves a user's rentals, most recent first.
	FindRentalsByUser(ctx context.Context, userID string) ([]domain.Rental, error)

	// FindRentals retrieves all rentals, most recent first (staff view).
	FindRentals(ctx context.Context) ([]domain.Rental, error)

	// FindActiveRentals retrieves all rentals that currently block a vehicle.
	FindActiveRentals(ctx context.Context, now time.Time) ([]domain.Rental, error)

	// IsVehicleAvailable reports whether no active, unreturned rental
	// references the vehicle.
	IsVehicleAvailable(ctx context.Context, vehicleID string, now time.Time) (bool, error)

	// HasUserActiveRental reports whether the user holds an active,
	// unreturned rental. This is the check-time guard behind the
	// one-active-rental-per-user rule.
	HasUserActiveRental(ctx context.Context, userID string, now time.Time) (bool, error)

	// HasActiveRentals reports whether any active rental references the
	// vehicle; used by the availability-toggle and delete guards.
	HasActiveRentals(ctx context.Context, vehicleID string, now time.Time) (bool, error)

	// HasAnyRentals reports whether any rental, in any status, references
	// the vehicle; the delete path retires the vehicle instead of removing
	// it when this is true.
	HasAnyRentals(ctx context.Context, vehicleID string) (bool, error)
}

// RentalWriter defines the ledger's state transitions. Each method is a single
// database transaction spanning the rental row and the vehicle availability
// flag; callers never see a partially applied booking.
type RentalWriter interface {
	// CreateRentalAndReserveVehicle inserts the rental and flips the
	// vehicle's availability off as one commit. The flip is conditional on
	// the vehicle still being available; losing that race returns
	// apperrors.ErrConflict and nothing is written.
	CreateRentalAndReserveVehicle(ctx context.Context, rental domain.Rental) error

	// CancelRentalAndReleaseVehicle moves an active rental to cancelled and
	// restores the vehicle's availability if no other active rental holds
	// it. Returns false, without error, when the rental is missing or not
	// active (idempotent no-op).
	CancelRentalAndReleaseVehicle(ctx context.Context, rentalID string, updatedBy string, now time.Time) (bool, error)

	// CompleteRentalAndReleaseVehicle is CancelRentalAndReleaseVehicle with
	// the completed terminal state.
	CompleteRentalAndReleaseVehicle(ctx context.Context, rentalID string, updatedBy string, now time.Time) (bool, error)
}

// RentalRepositoryFacade combines all rental-ledger repository interfaces.
type RentalRepositoryFacade interface {
	RentalReader
	RentalWriter
}
