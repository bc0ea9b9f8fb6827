package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tutorhub/internal/pkg/identity"
)

func limitedRouter(rl *RateLimiter, id *identity.Identity) *gin.Engine {
	router := gin.New()
	router.Use(withIdentity(id), RateLimit(rl))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	router := limitedRouter(rl, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_ReadsPass(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	router := limitedRouter(rl, nil)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 0, rl.size())
}

func TestRateLimit_PerProfile(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	a := &identity.Identity{ProfileID: uuid.New(), Role: identity.RoleStudent}
	b := &identity.Identity{ProfileID: uuid.New(), Role: identity.RoleStudent}

	w := httptest.NewRecorder()
	limitedRouter(rl, a).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	limitedRouter(rl, b).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	limitedRouter(rl, a).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.get("ip:1")
	rl.get("ip:2")
	assert.Equal(t, 2, rl.size())

	rl.evict(time.Now())
	assert.Equal(t, 2, rl.size())

	rl.evict(time.Now().Add(time.Hour))
	assert.Equal(t, 0, rl.size())
}
