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
	"github.com/carrentpro/crp_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rejection reasons surfaced to clients. Staff-facing tooling matches on
// these strings, so they stay stable.
const (
	reasonReturnDateInPast = "Return date must be in the future."
	reasonUserBlacklisted  = "You are blacklisted and cannot rent vehicles."
	reasonActiveRental     = "You already have an active rental. Return it before renting another vehicle."
	reasonVehicleNotFound  = "Vehicle not found."
	reasonVehicleTaken     = "This vehicle is not available for rent."
)

type rentalService struct {
	rentalRepo    portsrepo.RentalRepositoryFacade
	vehicleRepo   portsrepo.VehicleRepositoryFacade
	userRepo      portsrepo.UserReader
	blacklistRepo portsrepo.BlacklistReader
}

// NewRentalService creates the rental engine over the ledger and its
// supporting repositories.
func NewRentalService(
	rentalRepo portsrepo.RentalRepositoryFacade,
	vehicleRepo portsrepo.VehicleRepositoryFacade,
	userRepo portsrepo.UserReader,
	blacklistRepo portsrepo.BlacklistReader,
) portssvc.RentalSvcFacade {
	return &rentalService{
		rentalRepo:    rentalRepo,
		vehicleRepo:   vehicleRepo,
		userRepo:      userRepo,
		blacklistRepo: blacklistRepo,
	}
}

var _ portssvc.RentalSvcFacade = (*rentalService)(nil)

// isUserBlocked consults the cached user flag first and re-verifies against
// the registry, so a stale cache can only over-block, never under-block.
func (s *rentalService) isUserBlocked(ctx context.Context, userID string, now time.Time) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.IsBlacklisted {
		return true, nil
	}
	return s.blacklistRepo.IsUserBlacklisted(ctx, userID, now)
}

// checkEligibility runs the user-level checks shared by CreateRental and the
// preflight endpoints. A non-empty reason means the user may not rent.
func (s *rentalService) checkEligibility(ctx context.Context, userID string, now time.Time) (string, error) {
	blocked, err := s.isUserBlocked(ctx, userID, now)
	if err != nil {
		return "", err
	}
	if blocked {
		return reasonUserBlacklisted, nil
	}

	hasActive, err := s.rentalRepo.HasUserActiveRental(ctx, userID, now)
	if err != nil {
		return "", err
	}
	if hasActive {
		return reasonActiveRental, nil
	}

	return "", nil
}

// rentalDays computes billable days: whole days between now and the return
// date, partial days dropped, with a one-day minimum.
func rentalDays(now, returnDate time.Time) int64 {
	days := int64(returnDate.Sub(now).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

func (s *rentalService) CreateRental(ctx context.Context, userID, vehicleID string, returnDate time.Time) domain.RentalResult {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if !returnDate.After(now) {
		return domain.RentalRejectedWith(reasonReturnDateInPast)
	}

	reason, err := s.checkEligibility(ctx, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.RentalRejectedWith("User not found.")
		}
		logger.Error("eligibility check failed", "error", err, "user_id", userID)
		return domain.RentalFailedWith(err)
	}
	if reason != "" {
		return domain.RentalRejectedWith(reason)
	}

	result := s.tryBook(ctx, userID, vehicleID, now, returnDate)
	if result.Outcome == rentalRetry {
		// Lost the reservation race; one re-check settles whether the
		// vehicle is genuinely gone or the conflict was transient.
		logger.Info("rental booking lost a race, retrying once", "vehicle_id", vehicleID)
		result = s.tryBook(ctx, userID, vehicleID, now, returnDate)
		if result.Outcome == rentalRetry {
			return domain.RentalRejectedWith(reasonVehicleTaken)
		}
	}
	if result.Outcome == domain.RentalOK {
		logger.Info("rental created",
			"rental_id", result.Rental.RentalID,
			"user_id", userID,
			"vehicle_id", vehicleID,
			"total_price", result.Rental.TotalPrice.String())
	}
	return result
}

// rentalRetry is an internal-only outcome used between CreateRental and
// tryBook; it never leaves the service.
const rentalRetry domain.RentalOutcome = -1

func (s *rentalService) tryBook(ctx context.Context, userID, vehicleID string, now, returnDate time.Time) domain.RentalResult {
	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.RentalRejectedWith(reasonVehicleNotFound)
		}
		return domain.RentalFailedWith(err)
	}
	if !vehicle.IsAvailable {
		return domain.RentalRejectedWith(reasonVehicleTaken)
	}

	ledgerFree, err := s.rentalRepo.IsVehicleAvailable(ctx, vehicleID, now)
	if err != nil {
		return domain.RentalFailedWith(err)
	}
	if !ledgerFree {
		return domain.RentalRejectedWith(reasonVehicleTaken)
	}

	totalPrice := vehicle.PricePerDay.Mul(decimal.NewFromInt(rentalDays(now, returnDate)))
	rental := domain.Rental{
		RentalID:   uuid.NewString(),
		UserID:     userID,
		VehicleID:  &vehicle.VehicleID,
		RentalDate: now,
		ReturnDate: returnDate,
		TotalPrice: totalPrice,
		Status:     domain.RentalActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rentalRepo.CreateRentalAndReserveVehicle(ctx, rental); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return domain.RentalResult{Outcome: rentalRetry}
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.RentalRejectedWith(reasonVehicleNotFound)
		}
		return domain.RentalFailedWith(fmt.Errorf("failed to persist rental: %w", err))
	}

	return domain.RentalAccepted(&rental)
}

func (s *rentalService) CancelRental(ctx context.Context, rentalID, requestingUserID string, asStaff bool) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rental, err := s.rentalRepo.FindRentalByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !asStaff && rental.UserID != requestingUserID {
		logger.Warn("cancel refused for non-owner", "rental_id", rentalID, "user_id", requestingUserID)
		return false, nil
	}

	changed, err := s.rentalRepo.CancelRentalAndReleaseVehicle(ctx, rentalID, requestingUserID, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to cancel rental %s: %w", rentalID, err)
	}
	if changed {
		logger.Info("rental cancelled", "rental_id", rentalID, "by", requestingUserID)
	}
	return changed, nil
}

func (s *rentalService) CompleteRental(ctx context.Context, rentalID, staffUserID string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	changed, err := s.rentalRepo.CompleteRentalAndReleaseVehicle(ctx, rentalID, staffUserID, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to complete rental %s: %w", rentalID, err)
	}
	if changed {
		logger.Info("rental completed", "rental_id", rentalID, "by", staffUserID)
	}
	return changed, nil
}

func (s *rentalService) GetRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	return s.rentalRepo.FindRentalByID(ctx, rentalID)
}

func (s *rentalService) ListUserRentals(ctx context.Context, userID string) ([]domain.Rental, error) {
	return s.rentalRepo.FindRentalsByUser(ctx, userID)
}

func (s *rentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.FindRentals(ctx)
}

func (s *rentalService) ListActiveRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.FindActiveRentals(ctx, time.Now())
}

func (s *rentalService) CheckEligibility(ctx context.Context, userID string) (bool, string, error) {
	reason, err := s.checkEligibility(ctx, userID, time.Now())
	if err != nil {
		return false, "", err
	}
	if reason != "" {
		return false, reason, nil
	}
	return true, "", nil
}

func (s *rentalService) CanUserRentVehicle(ctx context.Context, userID, vehicleID string) (bool, error) {
	now := time.Now()

	reason, err := s.checkEligibility(ctx, userID, now)
	if err != nil {
		return false, err
	}
	if reason != "" {
		return false, nil
	}

	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	if !vehicle.IsAvailable {
		return false, nil
	}

	return s.rentalRepo.IsVehicleAvailable(ctx, vehicleID, now)
}
