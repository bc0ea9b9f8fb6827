package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const minutesPerDay = 24 * 60

// Interval is a half-open window [Start, End) in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether [a.Start,a.End) and [b.Start,b.End) intersect.
// Touching windows (09:00-10:00 and 10:00-11:00) do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

func (a Interval) Minutes() int {
	return a.End - a.Start
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DayBucket is the scope of conflict detection. Recurring slots are keyed by
// weekday, date overrides by calendar date.
type DayBucket struct {
	Weekday Weekday
	Date    *time.Time
}

// BucketOf returns the bucket a slot is compared in.
func BucketOf(s *AvailabilitySlot) DayBucket {
	return DayBucket{Weekday: s.DayOfWeek, Date: s.Date()}
}

func (b DayBucket) IsOverride() bool {
	return b.Date != nil
}

// Same reports whether two buckets are compared against each other.
// Recurring and override buckets never are, even on the same weekday: an
// override on a Monday does not collide with the weekly Monday schedule.
func (b DayBucket) Same(o DayBucket) bool {
	if b.IsOverride() != o.IsOverride() {
		return false
	}
	if b.IsOverride() {
		return b.Date.Equal(*o.Date)
	}
	return b.Weekday == o.Weekday
}

func (b DayBucket) String() string {
	if b.IsOverride() {
		return "date:" + b.Date.Format("2006-01-02")
	}
	return "weekday:" + b.Weekday.String()
}

// FindConflict returns the first existing slot in candidate's bucket whose
// window overlaps it, or nil. Slots with the candidate's own id are skipped.
func FindConflict(candidate *AvailabilitySlot, existing []AvailabilitySlot) (*AvailabilitySlot, error) {
	win, err := candidate.Interval()
	if err != nil {
		return nil, err
	}
	bucket := BucketOf(candidate)

	for i := range existing {
		other := &existing[i]
		if other.ID != uuid.Nil && other.ID == candidate.ID {
			continue
		}
		if other.TutorProfileID != candidate.TutorProfileID || !BucketOf(other).Same(bucket) {
			continue
		}
		ow, err := other.Interval()
		if err != nil {
			return nil, err
		}
		if win.Overlaps(ow) {
			return other, nil
		}
	}
	return nil, nil
}
