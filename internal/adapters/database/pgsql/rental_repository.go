package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carrentpro/crp_backend/internal/apperrors"
	"github.com/carrentpro/crp_backend/internal/core/domain"
	portsrepo "github.com/carrentpro/crp_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rentalColumns = `rental_id, user_id, vehicle_id, rental_date, return_date, total_price, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxRentalRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRentalRepository creates a new repository for the rental ledger.
func NewPgxRentalRepository(pool *pgxpool.Pool) portsrepo.RentalRepositoryFacade {
	return &PgxRentalRepository{pool: pool}
}

var _ portsrepo.RentalRepositoryFacade = (*PgxRentalRepository)(nil)

func scanRental(row pgx.Row) (*domain.Rental, error) {
	var rental domain.Rental
	err := row.Scan(
		&rental.RentalID,
		&rental.UserID,
		&rental.VehicleID,
		&rental.RentalDate,
		&rental.ReturnDate,
		&rental.TotalPrice,
		&rental.Status,
		&rental.CreatedAt,
		&rental.CreatedBy,
		&rental.LastUpdatedAt,
		&rental.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *PgxRentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rental row: %w", err)
		}
		rentals = append(rentals, *rental)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating rental rows: %w", rows.Err())
	}

	return rentals, nil
}

func (r *PgxRentalRepository) FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE rental_id = $1;`
	rental, err := scanRental(r.pool.QueryRow(ctx, query, rentalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rental by ID %s: %w", rentalID, err)
	}
	return rental, nil
}

func (r *PgxRentalRepository) FindRentalsByUser(ctx context.Context, userID string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1 ORDER BY rental_date DESC;`
	return r.queryRentals(ctx, query, userID)
}

func (r *PgxRentalRepository) FindRentals(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY rental_date DESC;`
	return r.queryRentals(ctx, query)
}

func (r *PgxRentalRepository) FindActiveRentals(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
		WHERE status = $1 AND return_date >= $2
		ORDER BY rental_date DESC;`
	return r.queryRentals(ctx, query, domain.RentalActive, now)
}

func (r *PgxRentalRepository) IsVehicleAvailable(ctx context.Context, vehicleID string, now time.Time) (bool, error) {
	query := `
		SELECT NOT EXISTS (
			SELECT 1 FROM rentals
			WHERE vehicle_id = $1 AND status = $2 AND return_date >= $3
		);
	`
	var available bool
	err := r.pool.QueryRow(ctx, query, vehicleID, domain.RentalActive, now).Scan(&available)
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle availability: %w", err)
	}
	return available, nil
}

func (r *PgxRentalRepository) HasUserActiveRental(ctx context.Context, userID string, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rentals
			WHERE user_id = $1 AND status = $2 AND return_date >= $3
		);
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, domain.RentalActive, now).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user active rentals: %w", err)
	}
	return exists, nil
}

func (r *PgxRentalRepository) HasActiveRentals(ctx context.Context, vehicleID string, now time.Time) (bool, error) {
	available, err := r.IsVehicleAvailable(ctx, vehicleID, now)
	if err != nil {
		return false, err
	}
	return !available, nil
}

func (r *PgxRentalRepository) HasAnyRentals(ctx context.Context, vehicleID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM rentals WHERE vehicle_id = $1);`, vehicleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle rentals: %w", err)
	}
	return exists, nil
}

func (r *PgxRentalRepository) CreateRentalAndReserveVehicle(ctx context.Context, rental domain.Rental) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for rental creation: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// The reservation is a conditional flip: zero rows means another
	// booking won the vehicle between the service's check and this commit.
	cmdTag, err := tx.Exec(ctx, `
		UPDATE vehicles
		SET is_available = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE vehicle_id = $3 AND is_available = TRUE;
	`, rental.LastUpdatedAt, rental.CreatedBy, rental.VehicleID)
	if err != nil {
		if isRetryableTxFailure(err) {
			return fmt.Errorf("vehicle reservation lost a race: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to reserve vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("vehicle is no longer available: %w", apperrors.ErrConflict)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rentals (`+rentalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		rental.RentalID,
		rental.UserID,
		rental.VehicleID,
		rental.RentalDate,
		rental.ReturnDate,
		rental.TotalPrice,
		rental.Status,
		rental.CreatedAt,
		rental.CreatedBy,
		rental.LastUpdatedAt,
		rental.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("rental references a missing user or vehicle: %w", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to insert rental: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isRetryableTxFailure(err) {
			return fmt.Errorf("rental creation lost a race: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to commit rental creation: %w", err)
	}
	return nil
}

func (r *PgxRentalRepository) CancelRentalAndReleaseVehicle(ctx context.Context, rentalID string, updatedBy string, now time.Time) (bool, error) {
	return r.closeRental(ctx, rentalID, domain.RentalCancelled, updatedBy, now)
}

func (r *PgxRentalRepository) CompleteRentalAndReleaseVehicle(ctx context.Context, rentalID string, updatedBy string, now time.Time) (bool, error) {
	return r.closeRental(ctx, rentalID, domain.RentalCompleted, updatedBy, now)
}

// closeRental moves an active rental to the given terminal status and restores
// the vehicle's availability flag unless another active rental still holds the
// vehicle. The status flip is conditional, so a repeated call on an already
// closed rental is a no-op reported as false.
func (r *PgxRentalRepository) closeRental(ctx context.Context, rentalID string, terminal domain.RentalStatus, updatedBy string, now time.Time) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction for rental %s: %w", terminal, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var vehicleID *string
	err = tx.QueryRow(ctx, `
		UPDATE rentals
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE rental_id = $4 AND status = $5
		RETURNING vehicle_id;
	`, terminal, now, updatedBy, rentalID, domain.RentalActive).Scan(&vehicleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update rental status: %w", err)
	}

	// A force-deleted vehicle leaves the rental behind with no vehicle to
	// release.
	if vehicleID != nil {
		var stillHeld bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM rentals
				WHERE vehicle_id = $1 AND status = $2 AND return_date >= $3
			);
		`, *vehicleID, domain.RentalActive, now).Scan(&stillHeld)
		if err != nil {
			return false, fmt.Errorf("failed to check remaining rentals: %w", err)
		}
		if !stillHeld {
			_, err = tx.Exec(ctx, `
				UPDATE vehicles
				SET is_available = TRUE, last_updated_at = $1, last_updated_by = $2
				WHERE vehicle_id = $3;
			`, now, updatedBy, *vehicleID)
			if err != nil {
				return false, fmt.Errorf("failed to release vehicle: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit rental %s: %w", terminal, err)
	}
	return true, nil
}
