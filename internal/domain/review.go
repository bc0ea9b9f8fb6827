package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorhub/internal/pkg/fixed"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID      uuid.UUID  `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex"`
	StudentID      uuid.UUID  `json:"student_id" gorm:"type:uuid;not null;index"`
	TutorProfileID uuid.UUID  `json:"tutor_profile_id" gorm:"type:uuid;not null;index:idx_reviews_tutor_rating,priority:1"`
	Rating         int        `json:"rating" gorm:"not null;index:idx_reviews_tutor_rating,priority:2;check:rating >= 1 AND rating <= 5"`
	Comment        string     `json:"comment" gorm:"type:text"`
	TutorResponse  *string    `json:"tutor_response,omitempty" gorm:"type:text"`
	RespondedAt    *time.Time `json:"responded_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Review) StudentRef() uuid.UUID { return r.StudentID }
func (r *Review) TutorRef() uuid.UUID   { return r.TutorProfileID }

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// RatingStatistics summarizes a filtered set of reviews.
type RatingStatistics struct {
	Total         int64         `json:"total"`
	AverageRating fixed.Decimal `json:"average_rating"`
	Distribution  map[int]int64 `json:"distribution"`
}

// NewRatingStatistics builds statistics from per-star counts. Every star
// 1..5 is present in Distribution, zero when absent.
func NewRatingStatistics(counts map[int]int64) RatingStatistics {
	dist := make(map[int]int64, MaxRating)
	var total, sum int64
	for star := MinRating; star <= MaxRating; star++ {
		n := counts[star]
		dist[star] = n
		total += n
		sum += n * int64(star)
	}
	return RatingStatistics{
		Total:         total,
		AverageRating: fixed.Average(sum, total),
		Distribution:  dist,
	}
}
