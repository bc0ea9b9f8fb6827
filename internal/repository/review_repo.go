package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/pagination"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ReviewFilter narrows ListForTutor and Distribution. A zero Rating keeps
// every star.
type ReviewFilter struct {
	Rating int
}

func (f ReviewFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Rating > 0 {
		q = q.Where("rating = ?", f.Rating)
	}
	return q
}

var reviewSortColumns = map[string]string{
	"createdAt": "created_at",
	"rating":    "rating",
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).Where("booking_id = ?", bookingID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetTutorResponse stores the tutor's reply, replacing any earlier one.
func (r *ReviewRepository) SetTutorResponse(ctx context.Context, id uuid.UUID, text string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("id = ?", id).
		Updates(map[string]any{"tutor_response": text, "responded_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewRepository) ListForTutor(ctx context.Context, tutorID uuid.UUID, f ReviewFilter, page pagination.Page) ([]domain.Review, int64, error) {
	q := f.apply(r.db.WithContext(ctx).Model(&domain.Review{}).Where("tutor_profile_id = ?", tutorID))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Review
	err := q.Order(page.OrderClause(reviewSortColumns, "created_at")).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type ratingCount struct {
	Rating int
	Count  int64
}

// Distribution counts reviews per star under the same filter as ListForTutor.
func (r *ReviewRepository) Distribution(ctx context.Context, tutorID uuid.UUID, f ReviewFilter) (map[int]int64, error) {
	var rows []ratingCount
	q := f.apply(r.db.WithContext(ctx).Model(&domain.Review{}).Where("tutor_profile_id = ?", tutorID))
	if err := q.Select("rating, COUNT(*) AS count").Group("rating").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int]int64, len(rows))
	for _, row := range rows {
		out[row.Rating] = row.Count
	}
	return out, nil
}
