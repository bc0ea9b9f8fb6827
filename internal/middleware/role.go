package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/identity"
	"tutorhub/internal/pkg/response"
)

// RequireRole lets the request through when the caller has one of roles.
// It must run after JWTAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		id, ok := identity.FromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !allowed[id.Role] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}
