package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carrentpro/crp_backend/internal/apperrors"
	"github.com/carrentpro/crp_backend/internal/core/domain"
	portsrepo "github.com/carrentpro/crp_backend/internal/core/ports/repositories"
	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/dto"
	"github.com/carrentpro/crp_backend/internal/middleware"
	"github.com/google/uuid"
)

type vehicleService struct {
	vehicleRepo portsrepo.VehicleRepositoryFacade
	branchRepo  portsrepo.BranchReader
	rentalRepo  portsrepo.RentalReader
}

// NewVehicleService creates the vehicle directory service.
func NewVehicleService(
	vehicleRepo portsrepo.VehicleRepositoryFacade,
	branchRepo portsrepo.BranchReader,
	rentalRepo portsrepo.RentalReader,
) portssvc.VehicleSvcFacade {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		branchRepo:  branchRepo,
		rentalRepo:  rentalRepo,
	}
}

var _ portssvc.VehicleSvcFacade = (*vehicleService)(nil)

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicleRepo.FindVehicles(ctx)
}

func (s *vehicleService) ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicleRepo.FindAvailableVehicles(ctx)
}

func (s *vehicleService) SearchVehicles(ctx context.Context, params dto.SearchVehiclesParams) ([]domain.Vehicle, error) {
	if params.Term == "" && params.BranchID != "" {
		return s.vehicleRepo.FindVehiclesByBranch(ctx, params.BranchID)
	}
	return s.vehicleRepo.SearchVehicles(ctx, params.Term, params.BranchID)
}

func (s *vehicleService) GetVehicleStock(ctx context.Context, vehicleID string) ([]domain.VehicleStock, error) {
	if _, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.vehicleRepo.FindStockByVehicle(ctx, vehicleID)
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, creatorUserID string) (*domain.Vehicle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if _, err := s.branchRepo.FindBranchByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("branch %s not found: %w", req.BranchID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify branch: %w", err)
	}
	if req.PricePerDay.IsNegative() || req.PricePerDay.IsZero() {
		return nil, fmt.Errorf("price per day must be positive: %w", apperrors.ErrValidation)
	}

	vehicle := domain.Vehicle{
		VehicleID:   uuid.NewString(),
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		Color:       req.Color,
		PricePerDay: req.PricePerDay,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
		BranchID:    req.BranchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.vehicleRepo.SaveVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	logger.Info("vehicle created", "vehicle_id", vehicle.VehicleID, "branch_id", vehicle.BranchID)
	return &vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, requestingUserID string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.PricePerDay != nil {
		if req.PricePerDay.IsNegative() || req.PricePerDay.IsZero() {
			return nil, fmt.Errorf("price per day must be positive: %w", apperrors.ErrValidation)
		}
		vehicle.PricePerDay = *req.PricePerDay
	}
	if req.Description != nil {
		vehicle.Description = *req.Description
	}
	if req.ImageURL != nil {
		vehicle.ImageURL = *req.ImageURL
	}
	if req.BranchID != nil {
		if _, err := s.branchRepo.FindBranchByID(ctx, *req.BranchID); err != nil {
			return nil, fmt.Errorf("branch %s not found: %w", *req.BranchID, apperrors.ErrNotFound)
		}
		vehicle.BranchID = *req.BranchID
	}
	vehicle.LastUpdatedAt = time.Now()
	vehicle.LastUpdatedBy = requestingUserID

	if err := s.vehicleRepo.UpdateVehicle(ctx, *vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *vehicleService) ToggleAvailability(ctx context.Context, vehicleID string, requestingUserID string) (*domain.Vehicle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	// Re-enabling is refused while an active rental still holds the
	// vehicle; the ledger releases the flag itself on return.
	if !vehicle.IsAvailable {
		held, err := s.rentalRepo.HasActiveRentals(ctx, vehicleID, time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to check active rentals: %w", err)
		}
		if held {
			return nil, fmt.Errorf("vehicle has an active rental: %w", apperrors.ErrConflict)
		}
	}

	newState := !vehicle.IsAvailable
	if err := s.vehicleRepo.SetAvailability(ctx, vehicleID, newState, requestingUserID); err != nil {
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}
	vehicle.IsAvailable = newState

	logger.Info("vehicle availability toggled", "vehicle_id", vehicleID, "available", newState)
	return vehicle, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, vehicleID string, force bool, requestingUserID string) (portssvc.VehicleDeleteOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if _, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID); err != nil {
		return 0, err
	}

	// Force delete skips the active-rental guard and removes dependent rows
	// with the vehicle. When it fails mid-way the transaction rolls back and
	// the vehicle is retired instead, so a broken vehicle never stays listed.
	if force {
		err := s.vehicleRepo.ForceDeleteVehicle(ctx, vehicleID)
		if err == nil {
			logger.Warn("vehicle force deleted with rental history", "vehicle_id", vehicleID, "by", requestingUserID)
			return portssvc.VehicleDeleted, nil
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, err
		}
		logger.Error("force delete failed, retiring vehicle instead", "vehicle_id", vehicleID, "error", err)
		if retireErr := s.vehicleRepo.SetAvailability(ctx, vehicleID, false, requestingUserID); retireErr != nil {
			return 0, fmt.Errorf("failed to force delete vehicle: %w", err)
		}
		return portssvc.VehicleMarkedUnavailable, nil
	}

	held, err := s.rentalRepo.HasActiveRentals(ctx, vehicleID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to check active rentals: %w", err)
	}
	if held {
		return 0, fmt.Errorf("vehicle has an active rental: %w", apperrors.ErrConflict)
	}

	history, err := s.rentalRepo.HasAnyRentals(ctx, vehicleID)
	if err != nil {
		return 0, fmt.Errorf("failed to check rental history: %w", err)
	}
	if !history {
		err = s.vehicleRepo.DeleteVehicle(ctx, vehicleID)
		if err == nil {
			logger.Info("vehicle deleted", "vehicle_id", vehicleID, "by", requestingUserID)
			return portssvc.VehicleDeleted, nil
		}
		// ErrConflict means a rental slipped in after the history check.
		if !errors.Is(err, apperrors.ErrConflict) {
			return 0, fmt.Errorf("failed to delete vehicle: %w", err)
		}
	}

	// Rental history blocks the delete; retire the vehicle instead so it
	// stops appearing in listings while the history stays intact.
	if err := s.vehicleRepo.SetAvailability(ctx, vehicleID, false, requestingUserID); err != nil {
		return 0, fmt.Errorf("failed to retire vehicle: %w", err)
	}
	logger.Info("vehicle retired instead of deleted", "vehicle_id", vehicleID, "by", requestingUserID)
	return portssvc.VehicleMarkedUnavailable, nil
}
