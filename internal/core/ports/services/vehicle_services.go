package services

import (
	"context"

	"github.com/carrentpro/crp_backend/internal/core/domain"
	"github.com/carrentpro/crp_backend/internal/dto"
)

// VehicleDeleteOutcome describes how a delete request ended.
type VehicleDeleteOutcome int

const (
	// VehicleDeleted: the vehicle row is gone.
	VehicleDeleted VehicleDeleteOutcome = iota
	// VehicleMarkedUnavailable: deletion was not possible (rental history or
	// a failed force delete); the vehicle was left unavailable instead.
	VehicleMarkedUnavailable
)

// VehicleSvcFacade is the vehicle directory.
type VehicleSvcFacade interface {
	// GetVehicleByID retrieves a vehicle.
	GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)

	// ListVehicles retrieves all vehicles.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)

	// ListAvailableVehicles retrieves vehicles open for booking.
	ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error)

	// SearchVehicles filters vehicles by term and optional branch.
	SearchVehicles(ctx context.Context, params dto.SearchVehiclesParams) ([]domain.Vehicle, error)

	// GetVehicleStock retrieves the per-branch stock rows of a vehicle.
	GetVehicleStock(ctx context.Context, vehicleID string) ([]domain.VehicleStock, error)

	// CreateVehicle adds a vehicle after verifying its branch exists.
	CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, creatorUserID string) (*domain.Vehicle, error)

	// UpdateVehicle applies the non-nil fields of the request.
	UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, requestingUserID string) (*domain.Vehicle, error)

	// ToggleAvailability flips the availability flag. Re-enabling is refused
	// while active rentals reference the vehicle.
	ToggleAvailability(ctx context.Context, vehicleID string, requestingUserID string) (*domain.Vehicle, error)

	// DeleteVehicle removes the vehicle, falling back to marking it
	// unavailable when rental history prevents deletion. With force set, all
	// dependent rental and stock rows are removed in one transaction.
	DeleteVehicle(ctx context.Context, vehicleID string, force bool, requestingUserID string) (VehicleDeleteOutcome, error)
}
