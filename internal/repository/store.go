package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store groups the repositories over one handle. A Store built inside
// Transaction shares the transaction; code running in fn must only use tx.
type Store struct {
	db *gorm.DB

	Tutors   *TutorRepository
	Slots    *AvailabilityRepository
	Bookings *BookingRepository
	Reviews  *ReviewRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Tutors:   NewTutorRepository(db),
		Slots:    NewAvailabilityRepository(db),
		Bookings: NewBookingRepository(db),
		Reviews:  NewReviewRepository(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn atomically. Returning an error rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// forUpdate takes a row lock on Postgres. The SQLite dialect drops the
// clause, which is fine there because writers are already serialized.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
