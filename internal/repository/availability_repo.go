package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorhub/internal/domain"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Create(ctx context.Context, s *domain.AvailabilitySlot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error) {
	var s domain.AvailabilitySlot
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AvailabilityRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error) {
	var s domain.AvailabilitySlot
	if err := forUpdate(r.db.WithContext(ctx)).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListInBucket returns the tutor's live slots that can collide with a slot in
// bucket. Overrides are narrowed to the weekday here and to the exact date by
// the caller.
func (r *AvailabilityRepository) ListInBucket(ctx context.Context, tutorID uuid.UUID, bucket domain.DayBucket) ([]domain.AvailabilitySlot, error) {
	q := r.db.WithContext(ctx).
		Where("tutor_profile_id = ? AND day_of_week = ?", tutorID, bucket.Weekday)
	if bucket.IsOverride() {
		q = q.Where("specific_date IS NOT NULL")
	} else {
		q = q.Where("specific_date IS NULL")
	}

	var slots []domain.AvailabilitySlot
	if err := q.Order("start_time asc").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// ListForTutor orders slots by weekday then start time. With onlyFree it
// drops booked slots and date overrides that are already in the past.
func (r *AvailabilityRepository) ListForTutor(ctx context.Context, tutorID uuid.UUID, onlyFree bool, today time.Time) ([]domain.AvailabilitySlot, error) {
	q := r.db.WithContext(ctx).Where("tutor_profile_id = ?", tutorID)
	if onlyFree {
		q = q.Where("is_booked = ?", false).
			Where("(specific_date IS NULL OR specific_date >= ?)", today)
	}

	var slots []domain.AvailabilitySlot
	if err := q.Order("day_of_week asc").Order("start_time asc").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Reserve flips isBooked false->true. It reports false when the slot was
// already booked or is gone; exactly one concurrent caller can win.
func (r *AvailabilityRepository) Reserve(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.AvailabilitySlot{}).
		Where("id = ? AND is_booked = ?", id, false).
		Update("is_booked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Release makes a slot bookable again. Releasing a free or deleted slot is a no-op.
func (r *AvailabilityRepository) Release(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.AvailabilitySlot{}).
		Where("id = ?", id).
		Update("is_booked", false).Error
}

func (r *AvailabilityRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.AvailabilitySlot{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
