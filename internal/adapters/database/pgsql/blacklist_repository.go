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

type PgxBlacklistRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBlacklistRepository creates a new repository for the blacklist
// registry.
func NewPgxBlacklistRepository(pool *pgxpool.Pool) portsrepo.BlacklistRepositoryFacade {
	return &PgxBlacklistRepository{pool: pool}
}

var _ portsrepo.BlacklistRepositoryFacade = (*PgxBlacklistRepository)(nil)

// activeEntryCondition matches entries that currently block a user: active and
// either open-ended or not yet expired.
const activeEntryCondition = `is_active = TRUE AND (expiration_date IS NULL OR expiration_date > $2)`

func (r *PgxBlacklistRepository) IsUserBlacklisted(ctx context.Context, userID string, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blacklist_entries
			WHERE user_id = $1 AND ` + activeEntryCondition + `
		);
	`
	var blocked bool
	err := r.pool.QueryRow(ctx, query, userID, now).Scan(&blocked)
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist for user %s: %w", userID, err)
	}
	return blocked, nil
}

func (r *PgxBlacklistRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.BlacklistEntry, error) {
	query := `
		SELECT b.entry_id, b.user_id, b.reason, b.created_at, b.created_by_admin,
			b.is_active, b.expiration_date, u.email
		FROM blacklist_entries b
		JOIN users u ON u.user_id = b.user_id
		WHERE b.entry_id = $1;
	`
	var entry domain.BlacklistEntry
	err := r.pool.QueryRow(ctx, query, entryID).Scan(
		&entry.EntryID,
		&entry.UserID,
		&entry.Reason,
		&entry.CreatedAt,
		&entry.CreatedByAdmin,
		&entry.IsActive,
		&entry.ExpirationDate,
		&entry.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find blacklist entry %s: %w", entryID, err)
	}
	return &entry, nil
}

func (r *PgxBlacklistRepository) FindActiveEntries(ctx context.Context) ([]domain.BlacklistEntry, error) {
	query := `
		SELECT b.entry_id, b.user_id, b.reason, b.created_at, b.created_by_admin,
			b.is_active, b.expiration_date, u.email
		FROM blacklist_entries b
		JOIN users u ON u.user_id = b.user_id
		WHERE b.is_active = TRUE
		ORDER BY b.created_at;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blacklist entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.BlacklistEntry{}
	for rows.Next() {
		var entry domain.BlacklistEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.UserID,
			&entry.Reason,
			&entry.CreatedAt,
			&entry.CreatedByAdmin,
			&entry.IsActive,
			&entry.ExpirationDate,
			&entry.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist row: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating blacklist rows: %w", rows.Err())
	}

	return entries, nil
}

func (r *PgxBlacklistRepository) AddEntry(ctx context.Context, entry domain.BlacklistEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for blacklist entry: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Setting the cached flag first also proves the user exists.
	cmdTag, err := tx.Exec(ctx, `
		UPDATE users
		SET is_blacklisted = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $3 AND deleted_at IS NULL;
	`, entry.CreatedAt, entry.CreatedByAdmin, entry.UserID)
	if err != nil {
		return fmt.Errorf("failed to flag blacklisted user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", entry.UserID, apperrors.ErrNotFound)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO blacklist_entries (entry_id, user_id, reason, created_at, created_by_admin, is_active, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`,
		entry.EntryID,
		entry.UserID,
		entry.Reason,
		entry.CreatedAt,
		entry.CreatedByAdmin,
		entry.IsActive,
		entry.ExpirationDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert blacklist entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit blacklist entry: %w", err)
	}
	return nil
}

func (r *PgxBlacklistRepository) DeactivateEntry(ctx context.Context, entryID string, adminID string, now time.Time) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction for blacklist removal: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var userID string
	err = tx.QueryRow(ctx, `
		UPDATE blacklist_entries
		SET is_active = FALSE
		WHERE entry_id = $1 AND is_active = TRUE
		RETURNING user_id;
	`, entryID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to deactivate blacklist entry: %w", err)
	}

	// Recompute the cached flag from what remains: the user stays flagged
	// only while another active, unexpired entry exists.
	var stillBlocked bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM blacklist_entries
			WHERE user_id = $1 AND `+activeEntryCondition+`
		);
	`, userID, now).Scan(&stillBlocked)
	if err != nil {
		return false, fmt.Errorf("failed to recompute blacklist flag: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET is_blacklisted = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4;
	`, stillBlocked, now, adminID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update blacklist flag: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit blacklist removal: %w", err)
	}
	return true, nil
}
