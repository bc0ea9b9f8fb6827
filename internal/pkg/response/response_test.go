package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/identity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.NotFound("x"), http.StatusNotFound, "NOT_FOUND"},
		{apperr.Unauthorized("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperr.AccessDenied("x"), http.StatusForbidden, "FORBIDDEN"},
		{apperr.Conflict("x"), http.StatusConflict, "CONFLICT"},
		{apperr.InvalidState("x"), http.StatusUnprocessableEntity, "INVALID_STATE"},
		{apperr.Validation("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		status, code := Classify(tt.err)
		assert.Equal(t, tt.status, status, tt.code)
		assert.Equal(t, tt.code, code)
	}
}

func TestFromError_HidesInternalMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FromError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), "Internal error")
}

func TestParamUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	_, ok := ParamUUID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")

	id := uuid.New()
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := ParamUUID(c2, "id")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	_, ok := Actor(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	want := identity.Identity{ProfileID: uuid.New(), Role: identity.RoleTutor}
	c2.Set(identity.ContextKey, want)
	got, ok := Actor(c2)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
