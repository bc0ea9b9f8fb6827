package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorhub/internal/pkg/fixed"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Active bookings hold their slot.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

type MeetingType string

const (
	MeetingOnline   MeetingType = "ONLINE"
	MeetingInPerson MeetingType = "IN_PERSON"
)

func (m MeetingType) Valid() bool {
	return m == MeetingOnline || m == MeetingInPerson
}

type CancelledBy string

const (
	CancelledByStudent CancelledBy = "STUDENT"
	CancelledByTutor   CancelledBy = "TUTOR"
	CancelledByAdmin   CancelledBy = "ADMIN"
)

// Booking is an audit record: it is never deleted and only changes through
// lifecycle transitions. Duration is in hours.
//
// idx_no_overbooking backs up the conditional slot reservation: at most one
// non-cancelled booking may reference a slot.
type Booking struct {
	ID                 uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	StudentID          uuid.UUID     `json:"student_id" gorm:"type:uuid;not null;index"`
	TutorProfileID     uuid.UUID     `json:"tutor_profile_id" gorm:"type:uuid;not null;index"`
	AvailabilityID     *uuid.UUID    `json:"availability_id,omitempty" gorm:"type:uuid;index;uniqueIndex:idx_no_overbooking,where:status <> 'CANCELLED'"`
	StartDateTime      time.Time     `json:"start_date_time" gorm:"not null;index"`
	EndDateTime        time.Time     `json:"end_date_time" gorm:"not null"`
	Duration           fixed.Decimal `json:"duration" gorm:"not null"`
	Price              fixed.Decimal `json:"price" gorm:"not null"`
	Status             BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	MeetingLink        string        `json:"meeting_link" gorm:"type:varchar(255)"`
	MeetingType        MeetingType   `json:"meeting_type" gorm:"type:varchar(16);not null"`
	CancelledBy        *CancelledBy  `json:"cancelled_by,omitempty" gorm:"type:varchar(16)"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	StudentNotes       *string       `json:"student_notes,omitempty" gorm:"type:text"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	Review *Review `json:"review,omitempty" gorm:"foreignKey:BookingID;references:ID"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Booking) StudentRef() uuid.UUID { return b.StudentID }
func (b *Booking) TutorRef() uuid.UUID   { return b.TutorProfileID }
