package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/access"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/fixed"
	"tutorhub/internal/pkg/identity"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

const msgSlotBooked = "This slot is already booked"

type Service struct {
	uow         UnitOfWork
	bookings    BookingReader
	meetingBase string
	now         func() time.Time
}

func NewService(uow UnitOfWork, bookings BookingReader, meetingBaseURL string) *Service {
	return &Service{
		uow:         uow,
		bookings:    bookings,
		meetingBase: strings.TrimRight(meetingBaseURL, "/"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking reserves the slot, if any, and records a PENDING booking in
// one transaction. The slot flip is a conditional update, so of two students
// racing for the same slot exactly one commits.
func (s *Service) CreateBooking(ctx context.Context, actor identity.Identity, in CreateBookingInput) (*domain.Booking, error) {
	if !actor.Is(identity.RoleStudent) {
		return nil, apperr.AccessDenied("Only students can create bookings")
	}
	if err := normalize(&in); err != nil {
		return nil, err
	}

	var b *domain.Booking
	err := s.uow.Transaction(ctx, func(tx *repository.Store) error {
		tutor, err := tx.Tutors.GetByID(ctx, in.TutorID)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.NotFound("Tutor not found")
			}
			return fmt.Errorf("get tutor: %w", err)
		}
		if !tutor.IsApproved {
			return apperr.AccessDenied("Tutor is not approved")
		}

		if in.SlotID != nil {
			if err := reserveSlot(ctx, tx, tutor.ID, *in.SlotID); err != nil {
				return err
			}
		}

		b = &domain.Booking{
			StudentID:      actor.ProfileID,
			TutorProfileID: tutor.ID,
			AvailabilityID: in.SlotID,
			StartDateTime:  in.Start,
			EndDateTime:    in.End,
			Duration:       *in.Duration,
			Price:          tutor.Price(*in.Duration),
			Status:         domain.BookingPending,
			MeetingLink:    s.meetingBase + "/" + uuid.NewString(),
			MeetingType:    in.MeetingType,
			StudentNotes:   in.Notes,
		}
		if err := tx.Bookings.Create(ctx, b); err != nil {
			if repository.IsUniqueViolation(err) {
				return apperr.Conflict(msgSlotBooked)
			}
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func reserveSlot(ctx context.Context, tx *repository.Store, tutorID, slotID uuid.UUID) error {
	slot, err := tx.Slots.GetByID(ctx, slotID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("Availability slot not found")
		}
		return fmt.Errorf("get slot: %w", err)
	}
	if slot.TutorProfileID != tutorID {
		return apperr.NotFound("Availability slot not found")
	}
	if slot.IsBooked {
		return apperr.Conflict(msgSlotBooked)
	}

	won, err := tx.Slots.Reserve(ctx, slotID)
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}
	if !won {
		return apperr.Conflict(msgSlotBooked)
	}
	return nil
}

func normalize(in *CreateBookingInput) error {
	in.Start = in.Start.UTC()
	in.End = in.End.UTC()
	if !in.Start.Before(in.End) {
		return apperr.Validation("Start time must be before end time")
	}

	span := in.End.Sub(in.Start)
	if span%time.Minute != 0 {
		return apperr.Validation("Booking window must be a whole number of minutes")
	}
	if in.Duration == nil {
		hours := fixed.FromInt(int64(span / time.Minute)).MulFrac(1, 60)
		in.Duration = &hours
	}
	if *in.Duration <= 0 {
		return apperr.Validation("Duration must be positive")
	}

	if in.MeetingType == "" {
		in.MeetingType = domain.MeetingOnline
	}
	if !in.MeetingType.Valid() {
		return apperr.Validation("Invalid meeting type")
	}
	return nil
}

// ConfirmBooking accepts a pending booking. Only its tutor may confirm.
func (s *Service) ConfirmBooking(ctx context.Context, actor identity.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	var b *domain.Booking
	err := s.uow.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if b, err = lockBooking(ctx, tx, bookingID); err != nil {
			return err
		}
		if err := access.CheckWith(b, actor, access.AssignedTutor, "Only the tutor can confirm this booking"); err != nil {
			return err
		}
		return advance(ctx, tx, b, domain.ActionConfirm, nil)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CancelBooking cancels on behalf of a participant or an admin and frees the
// slot in the same transaction.
func (s *Service) CancelBooking(ctx context.Context, actor identity.Identity, bookingID uuid.UUID, reason string) (*domain.Booking, error) {
	var b *domain.Booking
	err := s.uow.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if b, err = lockBooking(ctx, tx, bookingID); err != nil {
			return err
		}
		if err := access.Check(b, actor, access.Participant); err != nil {
			return err
		}

		by := cancelledBy(actor.Role)
		at := s.now()
		extra := map[string]any{
			"cancelled_by":        by,
			"cancellation_reason": reason,
			"cancelled_at":        at,
		}
		if err := advance(ctx, tx, b, domain.ActionCancel, extra); err != nil {
			return err
		}
		b.CancelledBy = &by
		b.CancellationReason = reason
		b.CancelledAt = &at

		if b.AvailabilityID != nil {
			if err := tx.Slots.Release(ctx, *b.AvailabilityID); err != nil {
				return fmt.Errorf("release slot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CompleteBooking marks a confirmed session as held. Only its tutor may do it.
func (s *Service) CompleteBooking(ctx context.Context, actor identity.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	var b *domain.Booking
	err := s.uow.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if b, err = lockBooking(ctx, tx, bookingID); err != nil {
			return err
		}
		if err := access.CheckWith(b, actor, access.AssignedTutor, "Only the tutor can mark this booking as completed"); err != nil {
			return err
		}
		return advance(ctx, tx, b, domain.ActionComplete, nil)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, actor identity.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if err := access.Check(b, actor, access.Participant); err != nil {
		return nil, err
	}
	return b, nil
}

// ListUserBookings lists the caller's own bookings, newest session first.
func (s *Service) ListUserBookings(ctx context.Context, actor identity.Identity, status domain.BookingStatus, page pagination.Page) ([]domain.Booking, pagination.Meta, error) {
	var f repository.BookingFilter
	switch actor.Role {
	case identity.RoleStudent:
		f.StudentID = &actor.ProfileID
	case identity.RoleTutor:
		f.TutorProfileID = &actor.ProfileID
	default:
		return nil, pagination.Meta{}, apperr.Validation("Invalid role")
	}
	if status != "" && !status.Valid() {
		return nil, pagination.Meta{}, apperr.Validation("Invalid booking status")
	}
	f.Status = status

	page = page.Normalize()
	page.SortBy, page.SortOrder = "startDateTime", "desc"
	return s.list(ctx, f, page)
}

// ListBookings is the unrestricted listing behind the admin route.
func (s *Service) ListBookings(ctx context.Context, f repository.BookingFilter, page pagination.Page) ([]domain.Booking, pagination.Meta, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, pagination.Meta{}, apperr.Validation("Invalid booking status")
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, pagination.Meta{}, apperr.Validation("endDate must not be before startDate")
	}
	return s.list(ctx, f, page.Normalize())
}

func (s *Service) list(ctx context.Context, f repository.BookingFilter, page pagination.Page) ([]domain.Booking, pagination.Meta, error) {
	items, total, err := s.bookings.List(ctx, f, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list bookings: %w", err)
	}
	return items, pagination.NewMeta(page, total), nil
}

func lockBooking(ctx context.Context, tx *repository.Store, id uuid.UUID) (*domain.Booking, error) {
	b, err := tx.Bookings.GetForUpdate(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// advance applies action to b with a write gated on the status read. When a
// concurrent transition got there first, the fresh status decides the error.
func advance(ctx context.Context, tx *repository.Store, b *domain.Booking, action domain.Action, extra map[string]any) error {
	next, err := domain.Transition(b.Status, action)
	if err != nil {
		return err
	}

	ok, err := tx.Bookings.UpdateStatus(ctx, b.ID, b.Status, next, extra)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if !ok {
		fresh, err := tx.Bookings.GetByID(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("reload booking: %w", err)
		}
		if _, err := domain.Transition(fresh.Status, action); err != nil {
			return err
		}
		return apperr.Conflict("Booking was modified concurrently")
	}

	b.Status = next
	return nil
}

func cancelledBy(r identity.Role) domain.CancelledBy {
	switch r {
	case identity.RoleAdmin:
		return domain.CancelledByAdmin
	case identity.RoleTutor:
		return domain.CancelledByTutor
	default:
		return domain.CancelledByStudent
	}
}
