package domain_test

import (
	"testing"
	"time"

	"github.com/carrentpro/crp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to domain.RentalStatus
		allowed  bool
	}{
		{domain.RentalActive, domain.RentalCompleted, true},
		{domain.RentalActive, domain.RentalCancelled, true},
		{domain.RentalActive, domain.RentalActive, false},
		{domain.RentalCompleted, domain.RentalActive, false},
		{domain.RentalCompleted, domain.RentalCancelled, false},
		{domain.RentalCancelled, domain.RentalCompleted, false},
		{domain.RentalCancelled, domain.RentalActive, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, domain.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRentalTransition(t *testing.T) {
	vehicleID := "veh-1"
	rental := domain.Rental{
		RentalID:   "rent-1",
		UserID:     "user-1",
		VehicleID:  &vehicleID,
		TotalPrice: decimal.NewFromInt(100),
		Status:     domain.RentalActive,
	}

	require.NoError(t, rental.Transition(domain.RentalCompleted))
	assert.Equal(t, domain.RentalCompleted, rental.Status)

	err := rental.Transition(domain.RentalCancelled)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.RentalCompleted, rental.Status, "failed transition must not change status")
}

func TestRentalIsOngoing(t *testing.T) {
	now := time.Now()
	rental := domain.Rental{
		Status:     domain.RentalActive,
		ReturnDate: now.Add(24 * time.Hour),
	}
	assert.True(t, rental.IsOngoing(now))

	rental.ReturnDate = now.Add(-time.Hour)
	assert.False(t, rental.IsOngoing(now), "past return date no longer blocks the vehicle")

	rental.ReturnDate = now.Add(24 * time.Hour)
	rental.Status = domain.RentalCancelled
	assert.False(t, rental.IsOngoing(now))
}

func TestBlacklistEntryIsCurrentlyActive(t *testing.T) {
	now := time.Now()
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Minute)

	entry := domain.BlacklistEntry{IsActive: true}
	assert.True(t, entry.IsCurrentlyActive(now), "open-ended active entry blocks")

	entry.ExpirationDate = &future
	assert.True(t, entry.IsCurrentlyActive(now))

	entry.ExpirationDate = &past
	assert.False(t, entry.IsCurrentlyActive(now), "expired entry no longer blocks")

	entry.IsActive = false
	entry.ExpirationDate = nil
	assert.False(t, entry.IsCurrentlyActive(now))
}
