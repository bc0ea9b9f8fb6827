package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tutorhub/internal/pkg/identity"
)

// ParamUUID parses a path parameter, writing a 400 when it is not a UUID.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// Actor returns the caller set by the auth middleware, writing a 401 when
// the route was reached without one.
func Actor(c *gin.Context) (identity.Identity, bool) {
	id, ok := identity.FromContext(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return identity.Identity{}, false
	}
	return id, true
}

// BindError answers a request whose body or query failed to bind.
func BindError(c *gin.Context, err error) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", err.Error())
}
