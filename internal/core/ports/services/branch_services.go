package services

import (
	"context"

	"github.com/carrentpro/crp_backend/internal/core/domain"
	"github.com/carrentpro/crp_backend/internal/dto"
)

// BranchSvcFacade manages branch records.
type BranchSvcFacade interface {
	// GetBranchByID retrieves a branch.
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// ListBranches retrieves all branches.
	ListBranches(ctx context.Context) ([]domain.Branch, error)

	// CreateBranch opens a new branch.
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)

	// UpdateBranch applies the non-nil fields of the request.
	UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, requestingUserID string) (*domain.Branch, error)

	// DeleteBranch removes a branch; refused with apperrors.ErrConflict
	// while vehicles still reference it.
	DeleteBranch(ctx context.Context, branchID string) error
}
