package booking

import (
	"context"

	"github.com/google/uuid"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

// UnitOfWork runs fn inside one database transaction. Every write path of
// the booking lifecycle goes through it.
type UnitOfWork interface {
	Transaction(ctx context.Context, fn func(tx *repository.Store) error) error
}

// BookingReader serves the read-only endpoints outside a transaction.
type BookingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter, page pagination.Page) ([]domain.Booking, int64, error)
}
