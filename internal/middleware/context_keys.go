package middleware

import (
	"github.com/carrentpro/crp_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin
// context.
func GetUserRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	if v := c.Request.Context().Value(userRoleKey); v != nil {
		if role, ok := v.(domain.UserRole); ok {
			return role, true
		}
	}
	return "", false
}
