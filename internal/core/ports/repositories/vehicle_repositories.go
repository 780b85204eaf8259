package repositories

import (
	"context"

	"github.com/carrentpro/crp_backend/internal/core/domain"
)

// VehicleReader defines read operations for the vehicle directory.
type VehicleReader interface {
	// FindVehicleByID retrieves a vehicle by its ID.
	FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)

	// FindVehicles retrieves all vehicles.
	FindVehicles(ctx context.Context) ([]domain.Vehicle, error)

	// FindAvailableVehicles retrieves vehicles currently marked available.
	FindAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error)

	// FindVehiclesByBranch retrieves the vehicles of one branch.
	FindVehiclesByBranch(ctx context.Context, branchID string) ([]domain.Vehicle, error)

	// SearchVehicles filters vehicles by a case-insensitive term over brand,
	// model and color, optionally restricted to a branch.
	SearchVehicles(ctx context.Context, term string, branchID string) ([]domain.Vehicle, error)

	// FindStockByVehicle retrieves the per-branch stock rows of a vehicle.
	FindStockByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleStock, error)
}

// VehicleWriter defines write operations for the vehicle directory.
type VehicleWriter interface {
	// SaveVehicle persists a new vehicle.
	SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error

	// UpdateVehicle updates an existing vehicle's details.
	UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error

	// SetAvailability sets the availability flag directly (staff toggle and
	// the delete fallback path).
	SetAvailability(ctx context.Context, vehicleID string, available bool, updatedBy string) error

	// DeleteVehicle removes a vehicle with no dependent rows. A foreign key
	// violation maps to apperrors.ErrConflict.
	DeleteVehicle(ctx context.Context, vehicleID string) error

	// ForceDeleteVehicle removes the vehicle together with all dependent
	// rental and stock rows in one transaction; any failure rolls the whole
	// deletion back.
	ForceDeleteVehicle(ctx context.Context, vehicleID string) error
}

// VehicleRepositoryFacade combines all vehicle repository interfaces.
type VehicleRepositoryFacade interface {
	VehicleReader
	VehicleWriter
}
