package repositories

import (
	"context"
	"time"

	"github.com/carrentpro/crp_backend/internal/core/domain"
)

// BlacklistReader defines read operations for the blacklist registry.
// These queries are the authoritative source of blacklist state; the
// users.is_blacklisted column is only a cache of them.
type BlacklistReader interface {
	// IsUserBlacklisted reports whether the user has at least one active,
	// non-expired entry at the given instant.
	IsUserBlacklisted(ctx context.Context, userID string, now time.Time) (bool, error)

	// FindEntryByID retrieves a single entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.BlacklistEntry, error)

	// FindActiveEntries retrieves all active entries in insertion order.
	FindActiveEntries(ctx context.Context) ([]domain.BlacklistEntry, error)
}

// BlacklistWriter defines the registry's mutations. Both methods update the
// user's denormalized is_blacklisted flag in the same transaction as the entry
// row, so the cache can never be observed out of sync.
type BlacklistWriter interface {
	// AddEntry inserts the entry and sets the user's flag. A nonexistent
	// user is apperrors.ErrNotFound.
	AddEntry(ctx context.Context, entry domain.BlacklistEntry) error

	// DeactivateEntry marks the entry inactive and recomputes the user's
	// flag from the remaining active entries, clearing it only when none
	// remain. Returns false when the entry does not exist.
	DeactivateEntry(ctx context.Context, entryID string, adminID string, now time.Time) (bool, error)
}

// BlacklistRepositoryFacade combines all blacklist repository interfaces.
type BlacklistRepositoryFacade interface {
	BlacklistReader
	BlacklistWriter
}
