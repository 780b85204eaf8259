package domain

import "time"

// BlacklistEntry is a rental restriction placed on a user by staff.
//
// A user is blacklisted iff at least one of their entries is active and not
// expired. Entries are never deleted; removal marks them inactive so the audit
// trail survives.
type BlacklistEntry struct {
	EntryID        string     `json:"entryID"`
	UserID         string     `json:"userID"`
	Reason         string     `json:"reason"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedByAdmin string     `json:"createdByAdmin"`
	IsActive       bool       `json:"isActive"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`

	// UserEmail is populated on reads that join the user, for staff views.
	UserEmail string `json:"userEmail,omitempty"`
}

// IsCurrentlyActive reports whether the entry restricts its user at the given
// instant.
func (e *BlacklistEntry) IsCurrentlyActive(now time.Time) bool {
	if !e.IsActive {
		return false
	}
	return e.ExpirationDate == nil || e.ExpirationDate.After(now)
}
