package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tutorhub/internal/pkg/identity"
)

func withIdentity(id *identity.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != nil {
			c.Set(identity.ContextKey, *id)
		}
		c.Next()
	}
}

func TestRequireRole(t *testing.T) {
	tutor := &identity.Identity{ProfileID: uuid.New(), Role: identity.RoleTutor}
	admin := &identity.Identity{ProfileID: uuid.New(), Role: identity.RoleAdmin}

	tests := []struct {
		name string
		id   *identity.Identity
		mw   gin.HandlerFunc
		want int
	}{
		{"missing identity", nil, RequireRole(identity.RoleTutor), http.StatusUnauthorized},
		{"role allowed", tutor, RequireRole(identity.RoleTutor), http.StatusOK},
		{"one of many", tutor, RequireRole(identity.RoleStudent, identity.RoleTutor), http.StatusOK},
		{"role denied", tutor, RequireRole(identity.RoleStudent), http.StatusForbidden},
		{"admin only", admin, AdminOnly(), http.StatusOK},
		{"admin only rejects tutor", tutor, AdminOnly(), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(withIdentity(tt.id), tt.mw)
			router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "FORBIDDEN")
			}
		})
	}
}
