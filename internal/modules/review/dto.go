package review

import (
	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/pagination"
)

type SubmitReviewRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}

type ReplyRequest struct {
	Response string `json:"response" binding:"required,max=2000"`
}

// ListQuery is GET /tutors/:id/reviews. Rating keeps only that star.
type ListQuery struct {
	Rating int `form:"rating" validate:"omitempty,min=1,max=5"`
	pagination.Page
}

// ReviewList is a page of reviews plus statistics over the whole filtered set.
type ReviewList struct {
	Items      []domain.Review         `json:"items"`
	Meta       pagination.Meta         `json:"meta"`
	Statistics domain.RatingStatistics `json:"statistics"`
}
