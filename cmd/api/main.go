package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"tutorhub/internal/app"
	"tutorhub/internal/cache"
	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/middleware"
	jwtsvc "tutorhub/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := setupLogger(cfg)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbLevel := logger.Warn
	if cfg.IsProd() {
		dbLevel = logger.Error
	}
	db, err := database.Connect(cfg.DatabaseURL, database.Options{LogLevel: dbLevel})
	if err != nil {
		log.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	var tutorCache cache.TutorCache = cache.Nop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.TutorCacheTTL)
		if err != nil {
			log.Warn("redis unavailable, tutor cache disabled", "error", err)
		} else {
			defer rc.Close()
			tutorCache = rc
			log.Info("tutor cache enabled", "ttl", cfg.TutorCacheTTL)
		}
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	router := app.NewRouter(app.Deps{
		DB:             db,
		JWT:            jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		TutorCache:     tutorCache,
		Limiter:        limiter,
		MeetingBaseURL: cfg.MeetingBaseURL,
		CORSOrigins:    cfg.CORSOrigins,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.IsProd() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
