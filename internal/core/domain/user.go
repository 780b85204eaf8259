package domain

import "time"

// UserRole controls what parts of the API a user may reach.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleEmployee UserRole = "EMPLOYEE"
	RoleAdmin    UserRole = "ADMIN"
)

// IsStaff reports whether the role may manage vehicles, branches, rentals and
// the blacklist.
func (r UserRole) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// AuthProvider identifies how a user account was created.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an account in the application.
//
// IsBlacklisted is a denormalized cache of the blacklist_entries table. It is
// written only inside blacklist transactions; the rental engine re-verifies
// against the registry before trusting it.
type User struct {
	UserID         string       `json:"userID"`
	Username       string       `json:"username"`
	PasswordHash   string       `json:"-"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Role           UserRole     `json:"role"`
	IsBlacklisted  bool         `json:"isBlacklisted"`
	AuthProvider   AuthProvider `json:"-"`
	ProviderUserID string       `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Refresh token fields; hash of the token, never the token itself.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
