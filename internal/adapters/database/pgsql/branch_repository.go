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

type PgxBranchRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBranchRepository creates a new repository for branch records.
func NewPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{pool: pool}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, name, address, phone_number, created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		WHERE branch_id = $1;
	`
	var b domain.Branch
	err := r.pool.QueryRow(ctx, query, branchID).Scan(
		&b.BranchID,
		&b.Name,
		&b.Address,
		&b.PhoneNumber,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch by ID %s: %w", branchID, err)
	}
	return &b, nil
}

func (r *PgxBranchRepository) FindBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `
		SELECT branch_id, name, address, phone_number, created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	branches := []domain.Branch{}
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(
			&b.BranchID,
			&b.Name,
			&b.Address,
			&b.PhoneNumber,
			&b.CreatedAt,
			&b.CreatedBy,
			&b.LastUpdatedAt,
			&b.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", rows.Err())
	}

	return branches, nil
}

func (r *PgxBranchRepository) BranchHasVehicles(ctx context.Context, branchID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vehicles WHERE branch_id = $1);`, branchID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check branch vehicles: %w", err)
	}
	return exists, nil
}

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (branch_id, name, address, phone_number, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		branch.BranchID,
		branch.Name,
		branch.Address,
		branch.PhoneNumber,
		branch.CreatedAt,
		branch.CreatedBy,
		branch.LastUpdatedAt,
		branch.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save branch: %w", err)
	}
	return nil
}

func (r *PgxBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		UPDATE branches
		SET name = $1, address = $2, phone_number = $3, last_updated_at = $4, last_updated_by = $5
		WHERE branch_id = $6;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		branch.Name,
		branch.Address,
		branch.PhoneNumber,
		branch.LastUpdatedAt,
		branch.LastUpdatedBy,
		branch.BranchID,
	)
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBranchRepository) DeleteBranch(ctx context.Context, branchID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM branches WHERE branch_id = $1;`, branchID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("branch still has vehicles: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
