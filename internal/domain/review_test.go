package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"tutorhub/internal/pkg/fixed"
)

func TestAddRating(t *testing.T) {
	var tp TutorProfile
	tp.AddRating(4)
	assert.Equal(t, "4.00", tp.AverageRating.String())
	tp.AddRating(2)
	assert.Equal(t, "3.00", tp.AverageRating.String())
	tp.AddRating(5)
	assert.Equal(t, "3.67", tp.AverageRating.String())
	assert.EqualValues(t, 11, tp.RatingSum)
	assert.Equal(t, 3, tp.TotalReviews)
}

func TestAddRating_LongRunOfFoursAfterFives(t *testing.T) {
	var tp TutorProfile
	for i := 0; i < 3; i++ {
		tp.AddRating(5)
	}
	sum := 15
	for i := 0; i < 300; i++ {
		tp.AddRating(4)
		sum += 4
		exact := float64(sum) / float64(tp.TotalReviews)
		assert.InDelta(t, exact, tp.AverageRating.Float64(), 0.005)
	}
	assert.Equal(t, "4.01", tp.AverageRating.String())
}

func TestAddRating_RandomSequenceMatchesExactMean(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var tp TutorProfile
	sum := 0
	for i := 0; i < 1000; i++ {
		r := MinRating + rng.Intn(MaxRating-MinRating+1)
		tp.AddRating(r)
		sum += r
		exact := float64(sum) / float64(i+1)
		if !assert.InDelta(t, exact, tp.AverageRating.Float64(), 0.005, "after %d ratings", i+1) {
			return
		}
	}
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}

func TestNewRatingStatistics(t *testing.T) {
	st := NewRatingStatistics(map[int]int64{5: 2, 3: 1})
	assert.EqualValues(t, 3, st.Total)
	assert.Equal(t, "4.33", st.AverageRating.String())
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 1, 4: 0, 5: 2}, st.Distribution)

	empty := NewRatingStatistics(nil)
	assert.EqualValues(t, 0, empty.Total)
	assert.Equal(t, "0.00", empty.AverageRating.String())
	assert.Len(t, empty.Distribution, 5)
}

func TestTutorPrice(t *testing.T) {
	tp := TutorProfile{HourlyRate: fixed.FromInt(25)}
	assert.Equal(t, "37.50", tp.Price(fixed.FromCents(150)).String())
	assert.Equal(t, "25.00", tp.Price(fixed.FromInt(1)).String())

	tp.HourlyRate = fixed.FromInt(20)
	assert.Equal(t, "20.00", tp.Price(fixed.FromInt(1)).String())
	assert.Equal(t, "6.60", tp.Price(fixed.FromCents(33)).String())

	tp.HourlyRate = fixed.FromCents(5)
	assert.Equal(t, "0.03", tp.Price(fixed.FromCents(50)).String())
}
