package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/identity"
	"tutorhub/internal/pkg/jwt"
	"tutorhub/internal/pkg/response"
)

// JWTAuth decodes the bearer token into an identity.Identity stored under
// identity.ContextKey. Banned accounts are rejected here so no service has
// to check the status again.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}
		id, err := claims.Identity()
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token claims are invalid")
			c.Abort()
			return
		}

		if id.Status == identity.StatusBanned {
			slog.WarnContext(c.Request.Context(), "banned account rejected",
				"profile_id", id.ProfileID, "request_id", RequestIDFrom(c))
			response.Error(c, http.StatusForbidden, "ACCOUNT_BANNED", "Your account has been banned")
			c.Abort()
			return
		}

		c.Set(identity.ContextKey, id)
		c.Next()
	}
}
