package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/pagination"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilter narrows List. Zero fields are ignored.
type BookingFilter struct {
	StudentID      *uuid.UUID
	TutorProfileID *uuid.UUID
	Status         domain.BookingStatus
	From           *time.Time
	To             *time.Time
}

var bookingSortColumns = map[string]string{
	"startDateTime": "start_date_time",
	"createdAt":     "created_at",
	"price":         "price",
	"status":        "status",
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Preload("Review").First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	if err := forUpdate(r.db.WithContext(ctx)).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateStatus moves a booking from one status to another and applies extra
// columns in the same statement. It reports false when the booking was no
// longer in from, meaning a concurrent transition won.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus, extra map[string]any) (bool, error) {
	values := map[string]any{"status": to}
	for k, v := range extra {
		values[k] = v
	}
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// HasUpcomingActiveForSlot reports whether a pending or confirmed booking on
// the slot starts at or after now.
func (r *BookingRepository) HasUpcomingActiveForSlot(ctx context.Context, slotID uuid.UUID, now time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("availability_id = ?", slotID).
		Where("status IN ?", []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}).
		Where("start_date_time >= ?", now).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter, page pagination.Page) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.TutorProfileID != nil {
		q = q.Where("tutor_profile_id = ?", *f.TutorProfileID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("start_date_time >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("end_date_time <= ?", f.To.UTC())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Booking
	err := q.Order(page.OrderClause(bookingSortColumns, "start_date_time")).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
