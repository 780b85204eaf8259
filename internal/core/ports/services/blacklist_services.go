package services

import (
	"context"
	"time"

	"github.com/carrentpro/crp_backend/internal/core/domain"
)

// BlacklistSvcFacade is the blacklist registry. It owns the denormalized
// user flag; no other component writes it.
type BlacklistSvcFacade interface {
	// IsUserBlacklisted reports whether the user currently has an active,
	// non-expired restriction. Authoritative; preferred over the cached
	// user flag for security-relevant decisions.
	IsUserBlacklisted(ctx context.Context, userID string) (bool, error)

	// AddToBlacklist restricts a user. The reason must be at least 10
	// characters (apperrors.ErrValidation); an already-blacklisted user is
	// apperrors.ErrDuplicate; a nonexistent user is apperrors.ErrNotFound.
	AddToBlacklist(ctx context.Context, userID, reason, adminID string, expiresAt *time.Time) (*domain.BlacklistEntry, error)

	// RemoveFromBlacklist lifts one restriction. The user-level flag clears
	// only when no other active entry remains.
	RemoveFromBlacklist(ctx context.Context, entryID, adminID string) error

	// ListBlacklist retrieves the active entries in insertion order.
	ListBlacklist(ctx context.Context) ([]domain.BlacklistEntry, error)

	// GetBlacklistEntry retrieves one entry.
	GetBlacklistEntry(ctx context.Context, entryID string) (*domain.BlacklistEntry, error)
}
