package middleware

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/response"
)

// RoleAdmin is the "superuser" role: sees inactive and soft-deleted posts
// and manages users.
const RoleAdmin = "admin"

// AdminMiddleware checks the role set by AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		role, ok := roleInterface.(string)
		if !ok || role != RoleAdmin {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// IsAdmin reports whether the current viewer has the admin role.
// Handlers pass this down so repositories can apply the visibility
// filter inside the listing query itself.
func IsAdmin(c *gin.Context) bool {
	role, ok := c.Get("role")
	if !ok {
		return false
	}
	r, ok := role.(string)
	return ok && r == RoleAdmin
}
