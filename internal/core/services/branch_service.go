package services

import (
	"context"
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

type branchService struct {
	branchRepo portsrepo.BranchRepositoryFacade
}

// NewBranchService creates the branch management service.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchService{branchRepo: branchRepo}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

func (s *branchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	return s.branchRepo.FindBranchByID(ctx, branchID)
}

func (s *branchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.branchRepo.FindBranches(ctx)
}

func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	branch := domain.Branch{
		BranchID:    uuid.NewString(),
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	logger.Info("branch created", "branch_id", branch.BranchID, "name", branch.Name)
	return &branch, nil
}

func (s *branchService) UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, requestingUserID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.PhoneNumber != nil {
		branch.PhoneNumber = *req.PhoneNumber
	}
	branch.LastUpdatedAt = time.Now()
	branch.LastUpdatedBy = requestingUserID

	if err := s.branchRepo.UpdateBranch(ctx, *branch); err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}

func (s *branchService) DeleteBranch(ctx context.Context, branchID string) error {
	hasVehicles, err := s.branchRepo.BranchHasVehicles(ctx, branchID)
	if err != nil {
		return fmt.Errorf("failed to check branch vehicles: %w", err)
	}
	if hasVehicles {
		return fmt.Errorf("branch still has vehicles: %w", apperrors.ErrConflict)
	}
	return s.branchRepo.DeleteBranch(ctx, branchID)
}
