package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorhub/internal/pkg/fixed"
)

// TutorProfile is the reservable party. RatingSum, TotalReviews and
// AverageRating are only written by the review aggregator; AverageRating is
// always derived from the exact sum so it never drifts.
type TutorProfile struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	DisplayName   string        `json:"display_name" gorm:"type:varchar(120);not null"`
	Bio           string        `json:"bio,omitempty" gorm:"type:text"`
	HourlyRate    fixed.Decimal `json:"hourly_rate" gorm:"not null"`
	IsApproved    bool          `json:"is_approved" gorm:"not null;index"`
	AverageRating fixed.Decimal `json:"average_rating" gorm:"not null"`
	TotalReviews  int           `json:"total_reviews" gorm:"not null"`
	RatingSum     int64         `json:"-" gorm:"not null;default:0"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (TutorProfile) TableName() string {
	return "tutor_profiles"
}

func (t *TutorProfile) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Price is hourly rate times hours.
func (t *TutorProfile) Price(hours fixed.Decimal) fixed.Decimal {
	return t.HourlyRate.Mul(hours)
}

// AddRating folds one more review into the aggregate.
func (t *TutorProfile) AddRating(rating int) {
	t.RatingSum += int64(rating)
	t.TotalReviews++
	t.AverageRating = fixed.Average(t.RatingSum, int64(t.TotalReviews))
}
