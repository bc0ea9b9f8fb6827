package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tutorhub/internal/cache"
	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/fixed"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

type Service struct {
	tutors TutorRepository
	cache  cache.TutorCache
}

func NewService(tutors TutorRepository, c cache.TutorCache) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{tutors: tutors, cache: c}
}

// Get returns the public profile, preferring the cache. Cache failures are
// logged and fall through to the database.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error) {
	t, err := s.cache.Get(ctx, id)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.WarnContext(ctx, "tutor cache read failed", "tutor_id", id, "error", err)
	}

	t, err = s.tutors.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Tutor not found")
		}
		return nil, fmt.Errorf("get tutor: %w", err)
	}

	if err := s.cache.Set(ctx, t); err != nil {
		slog.WarnContext(ctx, "tutor cache write failed", "tutor_id", id, "error", err)
	}
	return t, nil
}

// Approve lets the tutor publish availability and accept bookings.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error) {
	if err := s.tutors.SetApproved(ctx, id, true); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Tutor not found")
		}
		return nil, fmt.Errorf("approve tutor: %w", err)
	}
	s.Invalidate(ctx, id)

	t, err := s.tutors.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload tutor: %w", err)
	}
	return t, nil
}

// List is the public directory. Only approved tutors are listed whatever
// the filter says.
func (s *Service) List(ctx context.Context, f repository.TutorFilter, page pagination.Page) ([]domain.TutorProfile, pagination.Meta, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice {
		return nil, pagination.Meta{}, apperr.Validation("maxPrice must not be below minPrice")
	}
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > fixed.FromInt(domain.MaxRating)) {
		return nil, pagination.Meta{}, apperr.Validationf("minRating must be between 0 and %d", domain.MaxRating)
	}
	approved := true
	f.Approved = &approved
	return s.list(ctx, f, page.Normalize())
}

// ListPending is the admin queue of tutors waiting for approval, oldest first
// unless the caller sorts otherwise.
func (s *Service) ListPending(ctx context.Context, page pagination.Page) ([]domain.TutorProfile, pagination.Meta, error) {
	if page.SortBy == "" && page.SortOrder == "" {
		page.SortBy, page.SortOrder = "createdAt", "asc"
	}
	approved := false
	return s.list(ctx, repository.TutorFilter{Approved: &approved}, page.Normalize())
}

func (s *Service) list(ctx context.Context, f repository.TutorFilter, page pagination.Page) ([]domain.TutorProfile, pagination.Meta, error) {
	items, total, err := s.tutors.List(ctx, f, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list tutors: %w", err)
	}
	return items, pagination.NewMeta(page, total), nil
}

// Invalidate drops the cached profile after a committed write.
func (s *Service) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		slog.WarnContext(ctx, "tutor cache invalidate failed", "tutor_id", id, "error", err)
	}
}
