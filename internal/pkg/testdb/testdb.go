// Package testdb opens an isolated SQLite database per test and seeds the
// rows most service tests need.
package testdb

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tutorhub/internal/database"
	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/fixed"
)

// New returns a migrated database private to t. One pooled connection
// serializes transactions the way SQLite serializes writers anyway.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:tutorhub_%s_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, uuid.NewString()[:8])

	return open(t, dsn, 1)
}

// NewFile returns a migrated file database with several pooled connections,
// so concurrent transactions really run on separate connections. Writers
// take the lock at BEGIN and wait up to five seconds for each other.
func NewFile(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tutorhub.db")
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	return open(t, dsn, 8)
}

func open(t *testing.T, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := database.Connect(dsn, database.Options{LogLevel: logger.Silent, MaxOpenConns: conns})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Tutor inserts an approved tutor with the given hourly rate.
func Tutor(t *testing.T, db *gorm.DB, rate string) *domain.TutorProfile {
	t.Helper()
	hr, err := fixed.Parse(rate)
	require.NoError(t, err)

	tp := &domain.TutorProfile{DisplayName: "Tutor " + uuid.NewString()[:4], HourlyRate: hr, IsApproved: true}
	require.NoError(t, db.Create(tp).Error)
	return tp
}

// UnapprovedTutor inserts a tutor still waiting for approval.
func UnapprovedTutor(t *testing.T, db *gorm.DB) *domain.TutorProfile {
	t.Helper()
	tp := &domain.TutorProfile{DisplayName: "Pending tutor", HourlyRate: fixed.FromInt(10)}
	require.NoError(t, db.Create(tp).Error)
	return tp
}

// Slot inserts a free recurring slot.
func Slot(t *testing.T, db *gorm.DB, tutorID uuid.UUID, day domain.Weekday, start, end string) *domain.AvailabilitySlot {
	t.Helper()
	s := &domain.AvailabilitySlot{
		TutorProfileID: tutorID,
		DayOfWeek:      day,
		StartTime:      start,
		EndTime:        end,
		Duration:       fixed.FromInt(1),
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

// Booking inserts a booking in the given status without touching the slot.
func Booking(t *testing.T, db *gorm.DB, studentID, tutorID uuid.UUID, slotID *uuid.UUID, status domain.BookingStatus, start time.Time) *domain.Booking {
	t.Helper()
	start = start.UTC()
	b := &domain.Booking{
		StudentID:      studentID,
		TutorProfileID: tutorID,
		AvailabilityID: slotID,
		StartDateTime:  start,
		EndDateTime:    start.Add(time.Hour),
		Duration:       fixed.FromInt(1),
		Price:          fixed.FromInt(20),
		Status:         status,
		MeetingType:    domain.MeetingOnline,
		MeetingLink:    "https://meet.test/" + uuid.NewString(),
	}
	require.NoError(t, db.Create(b).Error)
	return b
}
