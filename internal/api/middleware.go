package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/dachabook/dacha-booking-backend/internal/auth"
	"github.com/dachabook/dacha-booking-backend/internal/user"
)

// RequireRole ensures the authenticated account holds one of the given
// roles. It MUST be used after auth.AuthRequired middleware; the role is
// read from the JWT claims, not re-fetched from storage.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := auth.GetUserRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
			return
		}

		c.Next()
	}
}

// RequireSuperadmin gates superadmin-only routes.
func RequireSuperadmin() gin.HandlerFunc {
	return RequireRole(user.RoleSuperadmin)
}

// RequireAdmin gates routes for dacha admins; superadmins pass too.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin, user.RoleSuperadmin)
}
