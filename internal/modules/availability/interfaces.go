package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

// UnitOfWork runs fn inside one database transaction.
type UnitOfWork interface {
	Transaction(ctx context.Context, fn func(tx *repository.Store) error) error
}

type TutorReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error)
}

type SlotReader interface {
	ListForTutor(ctx context.Context, tutorID uuid.UUID, onlyFree bool, today time.Time) ([]domain.AvailabilitySlot, error)
}
