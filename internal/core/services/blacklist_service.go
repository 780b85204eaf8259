package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carrentpro/crp_backend/internal/apperrors"
	"github.com/carrentpro/crp_backend/internal/core/domain"
	portsrepo "github.com/carrentpro/crp_backend/internal/core/ports/repositories"
	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/middleware"
	"github.com/google/uuid"
)

const minBlacklistReasonLength = 10

type blacklistService struct {
	blacklistRepo portsrepo.BlacklistRepositoryFacade
}

// NewBlacklistService creates the blacklist registry service.
func NewBlacklistService(blacklistRepo portsrepo.BlacklistRepositoryFacade) portssvc.BlacklistSvcFacade {
	return &blacklistService{blacklistRepo: blacklistRepo}
}

var _ portssvc.BlacklistSvcFacade = (*blacklistService)(nil)

func (s *blacklistService) IsUserBlacklisted(ctx context.Context, userID string) (bool, error) {
	return s.blacklistRepo.IsUserBlacklisted(ctx, userID, time.Now())
}

func (s *blacklistService) AddToBlacklist(ctx context.Context, userID, reason, adminID string, expiresAt *time.Time) (*domain.BlacklistEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if len(strings.TrimSpace(reason)) < minBlacklistReasonLength {
		return nil, fmt.Errorf("blacklist reason must be at least %d characters: %w", minBlacklistReasonLength, apperrors.ErrValidation)
	}
	if expiresAt != nil && !expiresAt.After(now) {
		return nil, fmt.Errorf("blacklist expiration must be in the future: %w", apperrors.ErrValidation)
	}

	blocked, err := s.blacklistRepo.IsUserBlacklisted(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing restrictions: %w", err)
	}
	if blocked {
		return nil, fmt.Errorf("user %s is already blacklisted: %w", userID, apperrors.ErrDuplicate)
	}

	entry := domain.BlacklistEntry{
		EntryID:        uuid.NewString(),
		UserID:         userID,
		Reason:         strings.TrimSpace(reason),
		CreatedAt:      now,
		CreatedByAdmin: adminID,
		IsActive:       true,
		ExpirationDate: expiresAt,
	}
	if err := s.blacklistRepo.AddEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add blacklist entry: %w", err)
	}

	logger.Info("user blacklisted", "user_id", userID, "entry_id", entry.EntryID, "admin_id", adminID)
	return &entry, nil
}

func (s *blacklistService) RemoveFromBlacklist(ctx context.Context, entryID, adminID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	removed, err := s.blacklistRepo.DeactivateEntry(ctx, entryID, adminID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to remove blacklist entry: %w", err)
	}
	if !removed {
		return fmt.Errorf("blacklist entry %s not found or already inactive: %w", entryID, apperrors.ErrNotFound)
	}

	logger.Info("blacklist entry removed", "entry_id", entryID, "admin_id", adminID)
	return nil
}

func (s *blacklistService) ListBlacklist(ctx context.Context) ([]domain.BlacklistEntry, error) {
	return s.blacklistRepo.FindActiveEntries(ctx)
}

func (s *blacklistService) GetBlacklistEntry(ctx context.Context, entryID string) (*domain.BlacklistEntry, error) {
	return s.blacklistRepo.FindEntryByID(ctx, entryID)
}
