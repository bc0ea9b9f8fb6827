package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/fixed"
	"tutorhub/internal/repository"
)

type Service struct {
	uow    UnitOfWork
	tutors TutorReader
	slots  SlotReader
	now    func() time.Time
}

func NewService(uow UnitOfWork, tutors TutorReader, slots SlotReader) *Service {
	return &Service{
		uow:    uow,
		tutors: tutors,
		slots:  slots,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateSlot validates the window, then inside one transaction locks the
// tutor row and rejects any overlap within the slot's day bucket. The lock
// serializes slot creation per tutor so the overlap check cannot race.
func (s *Service) CreateSlot(ctx context.Context, tutorID uuid.UUID, in CreateSlotInput) (*domain.AvailabilitySlot, error) {
	slot, err := buildSlot(tutorID, in)
	if err != nil {
		return nil, err
	}

	err = s.uow.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := approvedTutor(ctx, tx.Tutors.GetForUpdate, tutorID); err != nil {
			return err
		}

		existing, err := tx.Slots.ListInBucket(ctx, tutorID, domain.BucketOf(slot))
		if err != nil {
			return fmt.Errorf("list bucket: %w", err)
		}
		clash, err := domain.FindConflict(slot, existing)
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if clash != nil {
			return apperr.Conflict("Time slot conflicts with an existing availability")
		}

		if err := tx.Slots.Create(ctx, slot); err != nil {
			return fmt.Errorf("create slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// DeleteSlot soft-deletes a slot that has no upcoming active booking and is
// not currently booked.
func (s *Service) DeleteSlot(ctx context.Context, tutorID, slotID uuid.UUID) (*DeleteResult, error) {
	now := s.now()

	err := s.uow.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := approvedTutor(ctx, tx.Tutors.GetByID, tutorID); err != nil {
			return err
		}

		slot, err := tx.Slots.GetForUpdate(ctx, slotID)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.NotFound("Availability slot not found")
			}
			return fmt.Errorf("get slot: %w", err)
		}
		if slot.TutorProfileID != tutorID {
			return apperr.NotFound("Availability slot not found")
		}

		upcoming, err := tx.Bookings.HasUpcomingActiveForSlot(ctx, slotID, now)
		if err != nil {
			return fmt.Errorf("check bookings: %w", err)
		}
		if upcoming {
			return apperr.Conflict("Cannot delete availability slot with upcoming confirmed bookings")
		}
		if slot.IsBooked {
			return apperr.Conflict("This slot has been booked and cannot be deleted")
		}

		if err := tx.Slots.SoftDelete(ctx, slotID); err != nil {
			return fmt.Errorf("delete slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeleteResult{ID: slotID, Message: "Availability slot deleted successfully", DeletedAt: now}, nil
}

// ListForTutor is the public calendar. With onlyFree, booked slots and past
// date overrides are left out.
func (s *Service) ListForTutor(ctx context.Context, tutorID uuid.UUID, onlyFree bool) ([]domain.AvailabilitySlot, error) {
	if _, err := s.tutors.GetByID(ctx, tutorID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Tutor not found")
		}
		return nil, fmt.Errorf("get tutor: %w", err)
	}

	slots, err := s.slots.ListForTutor(ctx, tutorID, onlyFree, startOfDay(s.now()))
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// ListOwn is the tutor's own view, including booked slots.
func (s *Service) ListOwn(ctx context.Context, tutorID uuid.UUID) ([]domain.AvailabilitySlot, error) {
	if _, err := approvedTutor(ctx, s.tutors.GetByID, tutorID); err != nil {
		return nil, err
	}
	slots, err := s.slots.ListForTutor(ctx, tutorID, false, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// approvedTutor loads the tutor through get, which is the locking read when
// the caller is about to write slots.
func approvedTutor(ctx context.Context, get func(context.Context, uuid.UUID) (*domain.TutorProfile, error), tutorID uuid.UUID) (*domain.TutorProfile, error) {
	t, err := get(ctx, tutorID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Tutor profile not found")
		}
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if !t.IsApproved {
		return nil, apperr.AccessDenied("Tutor is not approved yet")
	}
	return t, nil
}

func buildSlot(tutorID uuid.UUID, in CreateSlotInput) (*domain.AvailabilitySlot, error) {
	start, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	end, err := domain.ParseClock(in.EndTime)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if start >= end {
		return nil, apperr.Validation("Start time must be before end time")
	}
	if in.Duration <= 0 {
		return nil, apperr.Validation("Duration must be positive")
	}
	// hundredths of an hour against minutes
	if in.Duration.Cents()*60 > int64(end-start)*fixed.Scale {
		return nil, apperr.Validation("Duration cannot exceed the slot window")
	}
	if in.MaxStudents != nil && *in.MaxStudents <= 0 {
		return nil, apperr.Validation("max_students must be positive")
	}

	slot := &domain.AvailabilitySlot{
		TutorProfileID: tutorID,
		DayOfWeek:      in.DayOfWeek,
		StartTime:      domain.FormatClock(start),
		EndTime:        domain.FormatClock(end),
		Duration:       in.Duration,
		MaxStudents:    in.MaxStudents,
	}

	if in.SpecificDate != nil {
		d := startOfDay(*in.SpecificDate)
		derived := domain.WeekdayOf(d)
		if in.DayOfWeek != 0 && in.DayOfWeek != derived {
			return nil, apperr.Validationf("day_of_week %s does not match specific_date %s (%s)", in.DayOfWeek, d.Format("2006-01-02"), derived)
		}
		slot.DayOfWeek = derived
		date := datatypes.Date(d)
		slot.SpecificDate = &date
	}
	if !slot.DayOfWeek.Valid() {
		return nil, apperr.Validation("day_of_week is required")
	}
	return slot, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
