package booking

import (
	"time"

	"github.com/google/uuid"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/fixed"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

type CreateBookingRequest struct {
	TutorProfileID string         `json:"tutor_profile_id" binding:"required,uuid"`
	AvailabilityID string         `json:"availability_id" binding:"omitempty,uuid"`
	StartDateTime  time.Time      `json:"start_date_time" binding:"required"`
	EndDateTime    time.Time      `json:"end_date_time" binding:"required"`
	Duration       *fixed.Decimal `json:"duration"`
	StudentNotes   *string        `json:"student_notes" binding:"omitempty,max=2000"`
	MeetingType    string         `json:"meeting_type" binding:"omitempty,oneof=ONLINE IN_PERSON"`
}

func (r CreateBookingRequest) Input() CreateBookingInput {
	in := CreateBookingInput{
		TutorID:     uuid.MustParse(r.TutorProfileID),
		Start:       r.StartDateTime,
		End:         r.EndDateTime,
		Duration:    r.Duration,
		Notes:       r.StudentNotes,
		MeetingType: domain.MeetingType(r.MeetingType),
	}
	if r.AvailabilityID != "" {
		id := uuid.MustParse(r.AvailabilityID)
		in.SlotID = &id
	}
	return in
}

// CreateBookingInput describes a reservation. Duration is in hours and is
// what the price is charged on; nil means derive it from Start and End.
type CreateBookingInput struct {
	TutorID     uuid.UUID
	SlotID      *uuid.UUID
	Start       time.Time
	End         time.Time
	Duration    *fixed.Decimal
	Notes       *string
	MeetingType domain.MeetingType
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// UserListQuery is GET /bookings.
type UserListQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	pagination.Page
}

// AdminListQuery is GET /admin/bookings. Dates are RFC 3339.
type AdminListQuery struct {
	StudentID      string `form:"studentId" validate:"omitempty,uuid"`
	TutorProfileID string `form:"tutorProfileId" validate:"omitempty,uuid"`
	Status         string `form:"status" validate:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	StartDate      string `form:"startDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate        string `form:"endDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	pagination.Page
}

func (q AdminListQuery) Filter() (repository.BookingFilter, error) {
	f := repository.BookingFilter{Status: domain.BookingStatus(q.Status)}
	if q.StudentID != "" {
		id := uuid.MustParse(q.StudentID)
		f.StudentID = &id
	}
	if q.TutorProfileID != "" {
		id := uuid.MustParse(q.TutorProfileID)
		f.TutorProfileID = &id
	}
	if q.StartDate != "" {
		t, err := time.Parse(time.RFC3339, q.StartDate)
		if err != nil {
			return f, apperr.Validation("startDate must be RFC 3339")
		}
		f.From = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse(time.RFC3339, q.EndDate)
		if err != nil {
			return f, apperr.Validation("endDate must be RFC 3339")
		}
		f.To = &t
	}
	return f, nil
}
