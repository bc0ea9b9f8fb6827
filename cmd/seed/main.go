package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/domain"
	"tutorhub/internal/modules/availability"
	"tutorhub/internal/modules/booking"
	"tutorhub/internal/modules/review"
	"tutorhub/internal/modules/tutor"
	"tutorhub/internal/pkg/fixed"
	"tutorhub/internal/pkg/identity"
	jwtsvc "tutorhub/internal/pkg/jwt"
	"tutorhub/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, database.Options{})
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{"reviews", "bookings", "availabilities", "tutor_profiles"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal("cleanup ", table, ": ", err)
		}
	}

	store := repository.NewStore(db)
	tutors := tutor.NewService(store.Tutors, nil)
	slots := availability.NewService(store, store.Tutors, store.Slots)
	bookings := booking.NewService(store, store.Bookings, cfg.MeetingBaseURL)
	reviews := review.NewService(store, store.Bookings, store.Tutors, store.Reviews, tutors)
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	log.Println("Creating tutors...")
	profiles := []struct {
		name string
		bio  string
		rate string
	}{
		{"Aigerim (Mathematics)", "Algebra and calculus for school and university", "25.00"},
		{"Daniyar (Physics)", "Olympiad physics and mechanics", "30.00"},
		{"Zhanna (English)", "IELTS preparation and conversation practice", "20.50"},
	}
	var created []*domain.TutorProfile
	for _, p := range profiles {
		rate, err := fixed.Parse(p.rate)
		if err != nil {
			log.Fatal(err)
		}
		tp := &domain.TutorProfile{DisplayName: p.name, Bio: p.bio, HourlyRate: rate}
		if err := store.Tutors.Create(ctx, tp); err != nil {
			log.Fatal("create tutor:", err)
		}
		if _, err := tutors.Approve(ctx, tp.ID); err != nil {
			log.Fatal("approve tutor:", err)
		}
		created = append(created, tp)
	}

	log.Println("Creating availability...")
	var mondaySlots []*domain.AvailabilitySlot
	for _, tp := range created {
		for _, day := range []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday} {
			for _, window := range [][2]string{{"09:00", "10:00"}, {"10:00", "11:00"}, {"14:00", "15:30"}} {
				s, err := slots.CreateSlot(ctx, tp.ID, availability.CreateSlotInput{
					DayOfWeek: day,
					StartTime: window[0],
					EndTime:   window[1],
					Duration:  fixed.FromInt(1),
				})
				if err != nil {
					log.Fatal("create slot:", err)
				}
				if day == domain.Monday && window[0] == "09:00" {
					mondaySlots = append(mondaySlots, s)
				}
			}
		}
	}

	log.Println("Creating students...")
	students := []identity.Identity{
		{ProfileID: uuid.New(), Role: identity.RoleStudent, Status: identity.StatusActive},
		{ProfileID: uuid.New(), Role: identity.RoleStudent, Status: identity.StatusActive},
	}

	log.Println("Creating bookings and reviews...")
	start := nextMonday(time.Now().UTC()).Add(9 * time.Hour)
	for i, tp := range created {
		student := students[i%len(students)]
		tutorID := identity.Identity{ProfileID: tp.ID, Role: identity.RoleTutor, Status: identity.StatusActive}

		// a past lesson, completed and reviewed
		past, err := bookings.CreateBooking(ctx, student, booking.CreateBookingInput{
			TutorID: tp.ID,
			Start:   start.AddDate(0, 0, -14),
			End:     start.AddDate(0, 0, -14).Add(time.Hour),
		})
		if err != nil {
			log.Fatal("create booking:", err)
		}
		if _, err := bookings.ConfirmBooking(ctx, tutorID, past.ID); err != nil {
			log.Fatal("confirm booking:", err)
		}
		if _, err := bookings.CompleteBooking(ctx, tutorID, past.ID); err != nil {
			log.Fatal("complete booking:", err)
		}
		if _, err := reviews.SubmitReview(ctx, student, past.ID, 5-i, "Clear explanations"); err != nil {
			log.Fatal("submit review:", err)
		}

		// an upcoming lesson holding the Monday 09:00 slot
		slotID := mondaySlots[i].ID
		if _, err := bookings.CreateBooking(ctx, student, booking.CreateBookingInput{
			TutorID: tp.ID,
			SlotID:  &slotID,
			Start:   start,
			End:     start.Add(time.Hour),
		}); err != nil {
			log.Fatal("create booking:", err)
		}
	}

	log.Println("Seed completed!")
	log.Println("Test tokens:")
	printToken(j, "admin", identity.Identity{ProfileID: uuid.New(), Role: identity.RoleAdmin, Status: identity.StatusActive})
	for i, s := range students {
		printToken(j, fmt.Sprintf("student %d", i+1), s)
	}
	for _, tp := range created {
		printToken(j, tp.DisplayName, identity.Identity{ProfileID: tp.ID, Role: identity.RoleTutor, Status: identity.StatusActive})
	}
}

func printToken(j *jwtsvc.Service, label string, id identity.Identity) {
	tok, err := j.GenerateToken(id)
	if err != nil {
		log.Fatal("token:", err)
	}
	fmt.Printf("%-24s %s %s\n  %s\n", label, id.Role, id.ProfileID, tok)
}

func nextMonday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() == time.Monday {
			return d
		}
	}
}
