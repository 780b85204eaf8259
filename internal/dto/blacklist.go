package dto

import (
	"time"

	"github.com/carrentpro/crp_backend/internal/core/domain"
)

// AddBlacklistRequest places a rental restriction on a user.
type AddBlacklistRequest struct {
	UserID         string     `json:"userID" binding:"required"`
	Reason         string     `json:"reason" binding:"required,min=10,max=500"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

// BlacklistEntryResponse is the staff-facing view of a restriction.
type BlacklistEntryResponse struct {
	EntryID        string     `json:"entryID"`
	UserID         string     `json:"userID"`
	UserEmail      string     `json:"userEmail,omitempty"`
	Reason         string     `json:"reason"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedByAdmin string     `json:"createdByAdmin"`
	IsActive       bool       `json:"isActive"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
}

// ToBlacklistEntryResponse converts a domain.BlacklistEntry to its DTO.
func ToBlacklistEntryResponse(e *domain.BlacklistEntry) BlacklistEntryResponse {
	return BlacklistEntryResponse{
		EntryID:        e.EntryID,
		UserID:         e.UserID,
		UserEmail:      e.UserEmail,
		Reason:         e.Reason,
		CreatedAt:      e.CreatedAt,
		CreatedByAdmin: e.CreatedByAdmin,
		IsActive:       e.IsActive,
		ExpirationDate: e.ExpirationDate,
	}
}

// ListBlacklistResponse wraps the active blacklist.
type ListBlacklistResponse struct {
	Entries []BlacklistEntryResponse `json:"entries"`
}

// ToListBlacklistResponse converts domain entries to the list DTO.
func ToListBlacklistResponse(entries []domain.BlacklistEntry) ListBlacklistResponse {
	out := make([]BlacklistEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToBlacklistEntryResponse(&entries[i])
	}
	return ListBlacklistResponse{Entries: out}
}
