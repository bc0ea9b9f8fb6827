package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/fixed"
	"tutorhub/internal/pkg/pagination"
)

type TutorRepository struct {
	db *gorm.DB
}

// TutorFilter narrows List. Nil bounds and an empty Search are ignored.
type TutorFilter struct {
	Approved  *bool
	MinPrice  *fixed.Decimal
	MaxPrice  *fixed.Decimal
	MinRating *fixed.Decimal
	Search    string
}

var tutorSortColumns = map[string]string{
	"rating":    "average_rating",
	"price":     "hourly_rate",
	"reviews":   "total_reviews",
	"createdAt": "created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func NewTutorRepository(db *gorm.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

func (r *TutorRepository) Create(ctx context.Context, t *domain.TutorProfile) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TutorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error) {
	var t domain.TutorProfile
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetForUpdate reads the profile and locks the row until the transaction ends.
func (r *TutorRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.TutorProfile, error) {
	var t domain.TutorProfile
	if err := forUpdate(r.db.WithContext(ctx)).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateRating writes the aggregate fields of t as computed by AddRating.
func (r *TutorRepository) UpdateRating(ctx context.Context, t *domain.TutorProfile) error {
	res := r.db.WithContext(ctx).Model(&domain.TutorProfile{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"rating_sum":     t.RatingSum,
			"total_reviews":  t.TotalReviews,
			"average_rating": t.AverageRating,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TutorRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	res := r.db.WithContext(ctx).Model(&domain.TutorProfile{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TutorRepository) List(ctx context.Context, f TutorFilter, page pagination.Page) ([]domain.TutorProfile, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.TutorProfile{})
	if f.Approved != nil {
		q = q.Where("is_approved = ?", *f.Approved)
	}
	if f.MinPrice != nil {
		q = q.Where("hourly_rate >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("hourly_rate <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("average_rating >= ?", *f.MinRating)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		q = q.Where(`(LOWER(display_name) LIKE ? ESCAPE '\' OR LOWER(bio) LIKE ? ESCAPE '\')`, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.TutorProfile
	err := q.Order(page.OrderClause(tutorSortColumns, "created_at")).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
