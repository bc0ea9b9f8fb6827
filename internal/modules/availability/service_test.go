package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/fixed"
	"tutorhub/internal/pkg/testdb"
	"tutorhub/internal/repository"
)

func setupService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()
	store := repository.NewStore(testdb.New(t))
	svc := NewService(store, store.Tutors, store.Slots)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return svc, store
}

func recurring(day domain.Weekday, start, end string) CreateSlotInput {
	return CreateSlotInput{DayOfWeek: day, StartTime: start, EndTime: end, Duration: fixed.FromInt(1)}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCreateSlot_Success(t *testing.T) {
	svc, store := setupService(t)
	tp := testdb.Tutor(t, store.DB(), "20")

	slot, err := svc.CreateSlot(context.Background(), tp.ID, recurring(domain.Monday, "9:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, "09:00", slot.StartTime)
	assert.Equal(t, "10:00", slot.EndTime)
	assert.False(t, slot.IsBooked)
	assert.Nil(t, slot.SpecificDate)
}

func TestCreateSlot_Validation(t *testing.T) {
	svc, store := setupService(t)
	tp := testdb.Tutor(t, store.DB(), "20")
	zero := 0

	cases := map[string]CreateSlotInput{
		"bad clock":        recurring(domain.Monday, "9am", "10:00"),
		"end before start": recurring(domain.Monday, "10:00", "09:00"),
		"empty window":     recurring(domain.Monday, "10:00", "10:00"),
		"no weekday":       recurring(0, "09:00", "10:00"),
		"duration too long": {
			DayOfWeek: domain.Monday, StartTime: "09:00", EndTime: "09:30", Duration: fixed.FromCents(75),
		},
		"zero duration": {
			DayOfWeek: domain.Monday, StartTime: "09:00", EndTime: "10:00",
		},
		"duration slightly over window": {
			DayOfWeek: domain.Monday, StartTime: "09:00", EndTime: "10:00", Duration: fixed.FromCents(101),
		},
		"zero capacity": {
			DayOfWeek: domain.Monday, StartTime: "09:00", EndTime: "10:00", Duration: fixed.FromInt(1), MaxStudents: &zero,
		},
		"weekday disagrees with date": {
			DayOfWeek: domain.Tuesday, StartTime: "09:00", EndTime: "10:00", Duration: fixed.FromInt(1),
			SpecificDate: date(2026, 3, 2), // a Monday
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateSlot(context.Background(), tp.ID, in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestCreateSlot_TutorChecks(t *testing.T) {
	svc, store := setupService(t)
	pending := testdb.UnapprovedTutor(t, store.DB())

	_, err := svc.CreateSlot(context.Background(), uuid.New(), recurring(domain.Monday, "09:00", "10:00"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.CreateSlot(context.Background(), pending.ID, recurring(domain.Monday, "09:00", "10:00"))
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	assert.Equal(t, "Tutor is not approved yet", apperr.MessageOf(err))
}

func TestCreateSlot_OverlapRules(t *testing.T) {
	svc, store := setupService(t)
	tp := testdb.Tutor(t, store.DB(), "20")
	other := testdb.Tutor(t, store.DB(), "20")
	ctx := context.Background()

	_, err := svc.CreateSlot(ctx, tp.ID, recurring(domain.Monday, "09:00", "10:00"))
	require.NoError(t, err)

	// touching windows are fine
	_, err = svc.CreateSlot(ctx, tp.ID, recurring(domain.Monday, "10:00", "11:00"))
	require.NoError(t, err)

	_, err = svc.CreateSlot(ctx, tp.ID, recurring(domain.Monday, "09:30", "10:30"))
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "Time slot conflicts with an existing availability", apperr.MessageOf(err))

	// other weekday, other tutor
	_, err = svc.CreateSlot(ctx, tp.ID, recurring(domain.Tuesday, "09:30", "10:30"))
	require.NoError(t, err)
	_, err = svc.CreateSlot(ctx, other.ID, recurring(domain.Monday, "09:30", "10:30"))
	require.NoError(t, err)
}

func TestCreateSlot_OverridesUseTheirOwnBucket(t *testing.T) {
	svc, store := setupService(t)
	tp := testdb.Tutor(t, store.DB(), "20")
	ctx := context.Background()

	_, err := svc.CreateSlot(ctx, tp.ID, recurring(domain.Monday, "09:00", "10:00"))
	require.NoError(t, err)

	// A Monday override does not collide with the weekly Monday slot.
	over, err := svc.CreateSlot(ctx, tp.ID, CreateSlotInput{
		StartTime: "09:00", EndTime: "10:00", Duration: fixed.FromInt(1), SpecificDate: date(2026, 3, 9),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Monday, over.DayOfWeek)

	_, err = svc.CreateSlot(ctx, tp.ID, CreateSlotInput{
		StartTime: "09:30", EndTime: "10:30", Duration: fixed.FromInt(1), SpecificDate: date(2026, 3, 9),
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// A different Monday is a different bucket.
	_, err = svc.CreateSlot(ctx, tp.ID, CreateSlotInput{
		StartTime: "09:30", EndTime: "10:30", Duration: fixed.FromInt(1), SpecificDate: date(2026, 3, 16),
	})
	require.NoError(t, err)
}

func TestCreateSlot_NoOverlapAmongAccepted(t *testing.T) {
	svc, store := setupService(t)
	tp := testdb.Tutor(t, store.DB(), "20")
	ctx := context.Background()

	windows := [][2]string{
		{"08:00", "09:00"}, {"08:30", "09:30"}, {"09:00", "10:00"}, {"09:45", "10:15"},
		{"10:00", "12:00"}, {"11:00", "11:30"}, {"12:00", "13:00"}, {"07:00", "08:15"},
	}

	var wg sync.WaitGroup
	for _, w := range windows {
		wg.Add(1)
		go func(start, end string) {
			defer wg.Done()
			in := recurring(domain.Wednesday, start, end)
			in.Duration = fixed.FromCents(25)
			_, _ = svc.CreateSlot(ctx, tp.ID, in)
		}(w[0], w[1])
	}
	wg.Wait()

	slots, err := svc.ListForTutor(ctx, tp.ID, false)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for i := range slots {
		a, err := slots[i].Interval()
		require.NoError(t, err)
		for j := i + 1; j < len(slots); j++ {
			b, err := slots[j].Interval()
			require.NoError(t, err)
			assert.False(t, a.Overlaps(b), "%s-%s overlaps %s-%s",
				slots[i].StartTime, slots[i].EndTime, slots[j].StartTime, slots[j].EndTime)
		}
	}
}

func TestListForTutor_OrderAndFreeFilter(t *testing.T) {
	svc, store := setupService(t)
	tp := testdb.Tutor(t, store.DB(), "20")
	ctx := context.Background()

	_, err := svc.CreateSlot(ctx, tp.ID, recurring(domain.Friday, "09:00", "10:00"))
	require.NoError(t, err)
	_, err = svc.CreateSlot(ctx, tp.ID, recurring(domain.Monday, "14:00", "15:00"))
	require.NoError(t, err)
	booked, err := svc.CreateSlot(ctx, tp.ID, recurring(domain.Monday, "09:00", "10:00"))
	require.NoError(t, err)
	require.NoError(t, store.DB().Model(booked).Update("is_booked", true).Error)

	// yesterday relative to the fixed clock, and tomorrow
	_, err = svc.CreateSlot(ctx, tp.ID, CreateSlotInput{StartTime: "09:00", EndTime: "10:00", Duration: fixed.FromInt(1), SpecificDate: date(2026, 3, 1)})
	require.NoError(t, err)
	_, err = svc.CreateSlot(ctx, tp.ID, CreateSlotInput{StartTime: "09:00", EndTime: "10:00", Duration: fixed.FromInt(1), SpecificDate: date(2026, 3, 3)})
	require.NoError(t, err)

	all, err := svc.ListForTutor(ctx, tp.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, domain.Monday, all[0].DayOfWeek)
	assert.Equal(t, "09:00", all[0].StartTime)
	// the 2026-03-01 override is a Sunday
	assert.Equal(t, domain.Sunday, all[len(all)-1].DayOfWeek)

	free, err := svc.ListForTutor(ctx, tp.ID, true)
	require.NoError(t, err)
	require.Len(t, free, 3)
	for _, s := range free {
		assert.False(t, s.IsBooked)
		if d := s.Date(); d != nil {
			assert.False(t, d.Before(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
		}
	}
}

func TestListForTutor_UnknownTutor(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.ListForTutor(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListOwn_RequiresApproval(t *testing.T) {
	svc, store := setupService(t)
	pending := testdb.UnapprovedTutor(t, store.DB())

	_, err := svc.ListOwn(context.Background(), pending.ID)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
}

func TestDeleteSlot(t *testing.T) {
	svc, store := setupService(t)
	db := store.DB()
	tp := testdb.Tutor(t, db, "20")
	ctx := context.Background()

	t.Run("free slot is soft deleted", func(t *testing.T) {
		slot := testdb.Slot(t, db, tp.ID, domain.Monday, "09:00", "10:00")

		res, err := svc.DeleteSlot(ctx, tp.ID, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, slot.ID, res.ID)

		_, err = store.Slots.GetByID(ctx, slot.ID)
		assert.True(t, repository.IsNotFound(err))

		var raw int64
		require.NoError(t, db.Unscoped().Model(&domain.AvailabilitySlot{}).Where("id = ?", slot.ID).Count(&raw).Error)
		assert.Equal(t, int64(1), raw)
	})

	t.Run("upcoming booking blocks deletion", func(t *testing.T) {
		slot := testdb.Slot(t, db, tp.ID, domain.Tuesday, "09:00", "10:00")
		require.NoError(t, db.Model(slot).Update("is_booked", true).Error)
		testdb.Booking(t, db, uuid.New(), tp.ID, &slot.ID, domain.BookingConfirmed, svc.now().Add(24*time.Hour))

		_, err := svc.DeleteSlot(ctx, tp.ID, slot.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, "Cannot delete availability slot with upcoming confirmed bookings", apperr.MessageOf(err))

		still, err := store.Slots.GetByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.True(t, still.IsBooked)
	})

	t.Run("pending booking blocks deletion even when flag is clear", func(t *testing.T) {
		slot := testdb.Slot(t, db, tp.ID, domain.Thursday, "09:00", "10:00")
		testdb.Booking(t, db, uuid.New(), tp.ID, &slot.ID, domain.BookingPending, svc.now().Add(48*time.Hour))

		_, err := svc.DeleteSlot(ctx, tp.ID, slot.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, "Cannot delete availability slot with upcoming confirmed bookings", apperr.MessageOf(err))

		_, err = store.Slots.GetByID(ctx, slot.ID)
		require.NoError(t, err)
	})

	t.Run("booked slot with past booking is kept", func(t *testing.T) {
		slot := testdb.Slot(t, db, tp.ID, domain.Wednesday, "09:00", "10:00")
		require.NoError(t, db.Model(slot).Update("is_booked", true).Error)
		testdb.Booking(t, db, uuid.New(), tp.ID, &slot.ID, domain.BookingConfirmed, svc.now().Add(-24*time.Hour))

		_, err := svc.DeleteSlot(ctx, tp.ID, slot.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, "This slot has been booked and cannot be deleted", apperr.MessageOf(err))
	})

	t.Run("foreign slot is not found", func(t *testing.T) {
		other := testdb.Tutor(t, db, "30")
		slot := testdb.Slot(t, db, other.ID, domain.Monday, "09:00", "10:00")

		_, err := svc.DeleteSlot(ctx, tp.ID, slot.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("missing slot", func(t *testing.T) {
		_, err := svc.DeleteSlot(ctx, tp.ID, uuid.New())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
