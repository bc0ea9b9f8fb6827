package availability

import (
	"time"

	"github.com/google/uuid"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/fixed"
)

// CreateSlotRequest is the POST /availability body. SpecificDate is
// "YYYY-MM-DD"; when present DayOfWeek may be omitted.
type CreateSlotRequest struct {
	DayOfWeek    domain.Weekday `json:"day_of_week"`
	StartTime    string         `json:"start_time" binding:"required"`
	EndTime      string         `json:"end_time" binding:"required"`
	Duration     fixed.Decimal  `json:"duration" binding:"required"`
	MaxStudents  *int           `json:"max_students" binding:"omitempty,gt=0"`
	SpecificDate string         `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r CreateSlotRequest) Input() (CreateSlotInput, error) {
	in := CreateSlotInput{
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Duration:    r.Duration,
		MaxStudents: r.MaxStudents,
	}
	if r.SpecificDate != "" {
		d, err := time.Parse("2006-01-02", r.SpecificDate)
		if err != nil {
			return in, err
		}
		in.SpecificDate = &d
	}
	return in, nil
}

type CreateSlotInput struct {
	DayOfWeek    domain.Weekday
	StartTime    string
	EndTime      string
	Duration     fixed.Decimal
	MaxStudents  *int
	SpecificDate *time.Time
}

type ListQuery struct {
	Free bool `form:"free"`
}

type DeleteResult struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	DeletedAt time.Time `json:"deleted_at"`
}
