package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

// UnitOfWork runs fn inside one database transaction.
type UnitOfWork interface {
	Transaction(ctx context.Context, fn func(tx *repository.Store) error) error
}

type BookingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type TutorReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error)
}

// ReviewRepository covers the reads and the reply write, none of which touch
// the rating aggregate.
type ReviewRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	SetTutorResponse(ctx context.Context, id uuid.UUID, text string, at time.Time) error
	ListForTutor(ctx context.Context, tutorID uuid.UUID, f repository.ReviewFilter, page pagination.Page) ([]domain.Review, int64, error)
	Distribution(ctx context.Context, tutorID uuid.UUID, f repository.ReviewFilter) (map[int]int64, error)
}

// ProfileInvalidator drops cached tutor profiles once a rating change commits.
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, tutorID uuid.UUID)
}
