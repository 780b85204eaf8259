package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/carrentpro/crp_backend/internal/apperrors"
	"github.com/carrentpro/crp_backend/internal/core/domain"
	portsrepo "github.com/carrentpro/crp_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vehicleColumns = `vehicle_id, brand, model, year, color, price_per_day, description, image_url,
	is_available, branch_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxVehicleRepository struct {
	pool *pgxpool.Pool
}

// NewPgxVehicleRepository creates a new repository for the vehicle directory.
func NewPgxVehicleRepository(pool *pgxpool.Pool) portsrepo.VehicleRepositoryFacade {
	return &PgxVehicleRepository{pool: pool}
}

var _ portsrepo.VehicleRepositoryFacade = (*PgxVehicleRepository)(nil)

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.VehicleID,
		&v.Brand,
		&v.Model,
		&v.Year,
		&v.Color,
		&v.PricePerDay,
		&v.Description,
		&v.ImageURL,
		&v.IsAvailable,
		&v.BranchID,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PgxVehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]domain.Vehicle, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, *vehicle)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", rows.Err())
	}

	return vehicles, nil
}

func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1;`
	vehicle, err := scanVehicle(r.pool.QueryRow(ctx, query, vehicleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vehicle by ID %s: %w", vehicleID, err)
	}
	return vehicle, nil
}

func (r *PgxVehicleRepository) FindVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY brand, model;`
	return r.queryVehicles(ctx, query)
}

func (r *PgxVehicleRepository) FindAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE is_available = TRUE ORDER BY brand, model;`
	return r.queryVehicles(ctx, query)
}

func (r *PgxVehicleRepository) FindVehiclesByBranch(ctx context.Context, branchID string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE branch_id = $1 ORDER BY brand, model;`
	return r.queryVehicles(ctx, query, branchID)
}

func (r *PgxVehicleRepository) SearchVehicles(ctx context.Context, term string, branchID string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE (brand ILIKE $1 OR model ILIKE $1 OR color ILIKE $1)`
	args := []any{"%" + term + "%"}
	if branchID != "" {
		query += ` AND branch_id = $2`
		args = append(args, branchID)
	}
	query += ` ORDER BY brand, model;`
	return r.queryVehicles(ctx, query, args...)
}

func (r *PgxVehicleRepository) FindStockByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleStock, error) {
	query := `
		SELECT stock_id, vehicle_id, branch_id, quantity, available_quantity
		FROM vehicle_stock WHERE vehicle_id = $1 ORDER BY branch_id;
	`
	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle stock: %w", err)
	}
	defer rows.Close()

	stock := []domain.VehicleStock{}
	for rows.Next() {
		var s domain.VehicleStock
		if err := rows.Scan(&s.StockID, &s.VehicleID, &s.BranchID, &s.Quantity, &s.AvailableQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle stock row: %w", err)
		}
		stock = append(stock, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating vehicle stock rows: %w", rows.Err())
	}

	return stock, nil
}

func (r *PgxVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		vehicle.VehicleID,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.PricePerDay,
		vehicle.Description,
		vehicle.ImageURL,
		vehicle.IsAvailable,
		vehicle.BranchID,
		vehicle.CreatedAt,
		vehicle.CreatedBy,
		vehicle.LastUpdatedAt,
		vehicle.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("branch %s not found: %w", vehicle.BranchID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return nil
}

func (r *PgxVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET brand = $1, model = $2, year = $3, color = $4, price_per_day = $5,
			description = $6, image_url = $7, branch_id = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE vehicle_id = $11;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.PricePerDay,
		vehicle.Description,
		vehicle.ImageURL,
		vehicle.BranchID,
		vehicle.LastUpdatedAt,
		vehicle.LastUpdatedBy,
		vehicle.VehicleID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("branch %s not found: %w", vehicle.BranchID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxVehicleRepository) SetAvailability(ctx context.Context, vehicleID string, available bool, updatedBy string) error {
	query := `
		UPDATE vehicles
		SET is_available = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE vehicle_id = $3;
	`
	cmdTag, err := r.pool.Exec(ctx, query, available, updatedBy, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to set vehicle availability: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxVehicleRepository) DeleteVehicle(ctx context.Context, vehicleID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE vehicle_id = $1;`, vehicleID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("vehicle still has rental history: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxVehicleRepository) ForceDeleteVehicle(ctx context.Context, vehicleID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for vehicle force delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM rentals WHERE vehicle_id = $1;`, vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle rentals: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM vehicle_stock WHERE vehicle_id = $1;`, vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle stock: %w", err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM vehicles WHERE vehicle_id = $1;`, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit vehicle force delete: %w", err)
	}
	return nil
}
