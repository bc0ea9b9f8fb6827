// Package app assembles services, handlers and middleware into the HTTP
// router served by cmd/api.
package app

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tutorhub/internal/cache"
	"tutorhub/internal/middleware"
	"tutorhub/internal/modules/availability"
	"tutorhub/internal/modules/booking"
	"tutorhub/internal/modules/review"
	"tutorhub/internal/modules/tutor"
	"tutorhub/internal/pkg/identity"
	"tutorhub/internal/pkg/jwt"
	"tutorhub/internal/repository"
)

type Deps struct {
	DB             *gorm.DB
	JWT            *jwt.Service
	TutorCache     cache.TutorCache
	Limiter        *middleware.RateLimiter
	MeetingBaseURL string
	CORSOrigins    []string
	Logger         *slog.Logger
}

func NewRouter(d Deps) *gin.Engine {
	store := repository.NewStore(d.DB)

	tutorService := tutor.NewService(store.Tutors, d.TutorCache)
	availabilityService := availability.NewService(store, store.Tutors, store.Slots)
	bookingService := booking.NewService(store, store.Bookings, d.MeetingBaseURL)
	reviewService := review.NewService(store, store.Bookings, store.Tutors, store.Reviews, tutorService)

	tutorHandler := tutor.NewHandler(tutorService)
	availabilityHandler := availability.NewHandler(availabilityService)
	bookingHandler := booking.NewHandler(bookingService)
	reviewHandler := review.NewHandler(reviewService)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(d.Logger), middleware.CORS(d.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(d.JWT))
	if d.Limiter != nil {
		authed.Use(middleware.RateLimit(d.Limiter))
	}
	students := authed.Group("", middleware.RequireRole(identity.RoleStudent))
	tutors := authed.Group("", middleware.RequireRole(identity.RoleTutor))
	admin := authed.Group("/admin", middleware.AdminOnly())

	tutorHandler.RegisterRoutes(v1, admin)
	availabilityHandler.RegisterRoutes(v1, tutors)
	bookingHandler.RegisterRoutes(booking.Routes{
		Authed:   authed,
		Students: students,
		Tutors:   tutors,
		Admin:    admin,
	})
	reviewHandler.RegisterRoutes(v1, students, tutors)

	return r
}
