package tutor

import (
	"context"

	"github.com/google/uuid"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

// TutorRepository defines the profile operations the tutor service needs.
type TutorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	List(ctx context.Context, f repository.TutorFilter, page pagination.Page) ([]domain.TutorProfile, int64, error)
}
