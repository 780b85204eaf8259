package middleware

import (
	"net/http"

	"github.com/carrentpro/crp_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireStaff aborts the request unless the authenticated user is an
// employee or an admin. Must run after AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok || !role.IsStaff() {
			GetLoggerFromCtx(c.Request.Context()).Warn("Staff-only route denied", "role", string(role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts the request unless the authenticated user is an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok || role != domain.RoleAdmin {
			GetLoggerFromCtx(c.Request.Context()).Warn("Admin-only route denied", "role", string(role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
