package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tutorhub/internal/pkg/fixed"
)

// Weekday is ISO-numbered (Monday=1 .. Sunday=7) so that ordering by the
// stored column yields Monday first.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i := Monday; i <= Sunday; i++ {
		if weekdayNames[i] == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown day of week %q", s)
}

// WeekdayOf maps a calendar date to its Weekday.
func WeekdayOf(t time.Time) Weekday {
	wd := t.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	if !w.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(w.String())
}

func (w *Weekday) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*w = 0
		return nil
	}
	v, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// AvailabilitySlot is a tutor-declared window, recurring weekly on DayOfWeek
// or pinned to SpecificDate. StartTime/EndTime are "HH:MM" in UTC.
type AvailabilitySlot struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	TutorProfileID uuid.UUID       `json:"tutor_profile_id" gorm:"type:uuid;not null;index:idx_availability_bucket,priority:1"`
	DayOfWeek      Weekday         `json:"day_of_week" gorm:"type:smallint;not null;index:idx_availability_bucket,priority:2"`
	SpecificDate   *datatypes.Date `json:"specific_date,omitempty" gorm:"index:idx_availability_bucket,priority:3"`
	StartTime      string          `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime        string          `json:"end_time" gorm:"type:varchar(5);not null"`
	Duration       fixed.Decimal   `json:"duration" gorm:"not null"`
	MaxStudents    *int            `json:"max_students,omitempty"`
	IsBooked       bool            `json:"is_booked" gorm:"not null;index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`

	Tutor *TutorProfile `json:"-" gorm:"foreignKey:TutorProfileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (AvailabilitySlot) TableName() string {
	return "availabilities"
}

func (s *AvailabilitySlot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Date returns the override date, or nil for recurring slots.
func (s *AvailabilitySlot) Date() *time.Time {
	if s.SpecificDate == nil {
		return nil
	}
	d := time.Time(*s.SpecificDate).UTC()
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// Interval returns the slot window in minutes since midnight.
func (s *AvailabilitySlot) Interval() (Interval, error) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}
