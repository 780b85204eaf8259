package repositories

import (
	"context"

	"github.com/carrentpro/crp_backend/internal/core/domain"
)

// BranchReader defines read operations for branch records.
type BranchReader interface {
	// FindBranchByID retrieves a branch by its ID.
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// FindBranches retrieves all branches.
	FindBranches(ctx context.Context) ([]domain.Branch, error)

	// BranchHasVehicles reports whether any vehicle references the branch.
	BranchHasVehicles(ctx context.Context, branchID string) (bool, error)
}

// BranchWriter defines write operations for branch records.
type BranchWriter interface {
	// SaveBranch persists a new branch.
	SaveBranch(ctx context.Context, branch domain.Branch) error

	// UpdateBranch updates an existing branch.
	UpdateBranch(ctx context.Context, branch domain.Branch) error

	// DeleteBranch removes a branch with no vehicles. A foreign key
	// violation maps to apperrors.ErrConflict.
	DeleteBranch(ctx context.Context, branchID string) error
}

// BranchRepositoryFacade combines all branch repository interfaces.
type BranchRepositoryFacade interface {
	BranchReader
	BranchWriter
}
