package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"tutorhub/internal/domain"
)

// Options tune the connection. Zero values are fine for local use.
type Options struct {
	LogLevel     logger.LogLevel
	MaxOpenConns int
}

// Connect opens PostgreSQL for postgres:// DSNs and the pure-Go SQLite
// driver for anything else. Timestamps written by gorm are always UTC.
func Connect(dsn string, opts Options) (*gorm.DB, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	}

	var dialector gorm.Dialector
	if IsPostgres(dsn) {
		slog.Info("connecting to postgres")
		dialector = postgres.Open(dsn)
	} else {
		slog.Info("using sqlite", "dsn", dsn)
		dialector = gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		})
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	return db, nil
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&domain.TutorProfile{},
		&domain.AvailabilitySlot{},
		&domain.Booking{},
		&domain.Review{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
