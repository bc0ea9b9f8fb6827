package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/access"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/identity"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

const msgReviewExists = "Review already exists for this booking"

type Service struct {
	uow      UnitOfWork
	bookings BookingReader
	tutors   TutorReader
	reviews  ReviewRepository
	profiles ProfileInvalidator
	now      func() time.Time
}

func NewService(uow UnitOfWork, bookings BookingReader, tutors TutorReader, reviews ReviewRepository, profiles ProfileInvalidator) *Service {
	return &Service{
		uow:      uow,
		bookings: bookings,
		tutors:   tutors,
		reviews:  reviews,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SubmitReview records the student's review of a completed booking and folds
// the rating into the tutor's aggregate. The tutor row stays locked from
// the read of the old sum until commit, so concurrent submissions for one
// tutor apply one after another.
func (s *Service) SubmitReview(ctx context.Context, actor identity.Identity, bookingID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	if !actor.Is(identity.RoleStudent) {
		return nil, apperr.AccessDenied("Only students can write reviews")
	}
	if !domain.ValidRating(rating) {
		return nil, apperr.Validationf("Rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if err := access.CheckWith(b, actor, access.OwningStudent, "You are not authorized to review this booking"); err != nil {
		return nil, err
	}
	if b.Status != domain.BookingCompleted {
		return nil, apperr.InvalidState("Booking must be completed before writing a review")
	}
	if b.Review != nil {
		return nil, apperr.Conflict(msgReviewExists)
	}

	rv := &domain.Review{
		BookingID:      b.ID,
		StudentID:      b.StudentID,
		TutorProfileID: b.TutorProfileID,
		Rating:         rating,
		Comment:        strings.TrimSpace(comment),
	}

	err = s.uow.Transaction(ctx, func(tx *repository.Store) error {
		tutor, err := tx.Tutors.GetForUpdate(ctx, b.TutorProfileID)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.NotFound("Tutor profile not found")
			}
			return fmt.Errorf("lock tutor: %w", err)
		}

		exists, err := tx.Reviews.ExistsForBooking(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("check review: %w", err)
		}
		if exists {
			return apperr.Conflict(msgReviewExists)
		}

		if err := tx.Reviews.Create(ctx, rv); err != nil {
			if repository.IsUniqueViolation(err) {
				return apperr.Conflict(msgReviewExists)
			}
			return fmt.Errorf("create review: %w", err)
		}

		tutor.AddRating(rating)
		if err := tx.Tutors.UpdateRating(ctx, tutor); err != nil {
			return fmt.Errorf("update rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.profiles != nil {
		s.profiles.Invalidate(ctx, b.TutorProfileID)
	}
	return rv, nil
}

// ReplyToReview stores the reviewed tutor's public answer. A second reply
// replaces the first.
func (s *Service) ReplyToReview(ctx context.Context, actor identity.Identity, reviewID uuid.UUID, text string) (*domain.Review, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("Response must not be empty")
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Review not found")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	if err := access.CheckWith(rv, actor, access.AssignedTutor, "Only the reviewed tutor can respond to this review"); err != nil {
		return nil, err
	}

	at := s.now()
	if err := s.reviews.SetTutorResponse(ctx, reviewID, text, at); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Review not found")
		}
		return nil, fmt.Errorf("save response: %w", err)
	}
	rv.TutorResponse = &text
	rv.RespondedAt = &at
	return rv, nil
}

// ListTutorReviews pages through a tutor's reviews. Statistics cover every
// review matching the filter, not just the page.
func (s *Service) ListTutorReviews(ctx context.Context, tutorID uuid.UUID, q ListQuery) (*ReviewList, error) {
	if q.Rating != 0 && !domain.ValidRating(q.Rating) {
		return nil, apperr.Validationf("Rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if _, err := s.tutors.GetByID(ctx, tutorID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Tutor not found")
		}
		return nil, fmt.Errorf("get tutor: %w", err)
	}

	page := q.Page.Normalize()
	filter := repository.ReviewFilter{Rating: q.Rating}

	items, total, err := s.reviews.ListForTutor(ctx, tutorID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	counts, err := s.reviews.Distribution(ctx, tutorID, filter)
	if err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}

	return &ReviewList{
		Items:      items,
		Meta:       pagination.NewMeta(page, total),
		Statistics: domain.NewRatingStatistics(counts),
	}, nil
}
