package checkins_test

import (
	"testing"
	"time"

	"github.com/pulsefit/core/internal/checkins"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExerciseSet_DurationSeconds(t *testing.T) {
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	set := checkins.ExerciseSet{StartedAt: start, EndedAt: start.Add(45 * time.Second)}
	assert.Equal(t, 45, set.DurationSeconds())

	// clock skew: end before start clamps to zero
	skewed := checkins.ExerciseSet{StartedAt: start, EndedAt: start.Add(-10 * time.Second)}
	assert.Zero(t, skewed.DurationSeconds())
}

func TestCheckIn_IsActive(t *testing.T) {
	checkIn := checkins.CheckIn{ID: uuid.New(), StartedAt: time.Now()}
	assert.True(t, checkIn.IsActive())

	ended := time.Now()
	checkIn.EndedAt = &ended
	assert.False(t, checkIn.IsActive())
}

func TestBuildProgress_Empty(t *testing.T) {
	assert.Empty(t, checkins.BuildProgress(nil, nil, nil))
}

func TestBuildProgress_BucketsPerDay(t *testing.T) {
	userID := uuid.New()
	day1 := time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 30, 18, 0, 0, 0, time.Local)

	morning := checkins.CheckIn{ID: uuid.New(), UserID: userID, StartedAt: day1}
	evening := checkins.CheckIn{ID: uuid.New(), UserID: userID, StartedAt: day1.Add(9 * time.Hour)}
	next := checkins.CheckIn{ID: uuid.New(), UserID: userID, StartedAt: day2}

	sets := []checkins.ExerciseSet{
		{ID: uuid.New(), CheckInID: morning.ID, Reps: 8, Weight: 100},
		{ID: uuid.New(), CheckInID: morning.ID, Reps: 8, Weight: 105},
		{ID: uuid.New(), CheckInID: next.ID, Reps: 5, Weight: 140},
	}
	meals := []checkins.MealCalories{
		{EatenAt: day1.Add(3 * time.Hour), Calories: 640},
		{EatenAt: day1.Add(10 * time.Hour), Calories: 450},
		{EatenAt: day2, Calories: 800},
	}

	snapshots := checkins.BuildProgress([]checkins.CheckIn{morning, evening, next}, sets, meals)
	require.Len(t, snapshots, 2)

	first := snapshots[0]
	assert.Equal(t, checkins.DayStart(day1), first.Day)
	assert.Equal(t, 2, first.WorkoutsCompleted)
	assert.Equal(t, 2, first.SetsCompleted)
	assert.InDelta(t, 8*100+8*105, first.TotalVolume, 0.001)
	assert.Equal(t, 1090, first.Calories)

	second := snapshots[1]
	assert.Equal(t, 1, second.WorkoutsCompleted)
	assert.Equal(t, 1, second.SetsCompleted)
	assert.InDelta(t, 700, second.TotalVolume, 0.001)
	assert.Equal(t, 800, second.Calories)
}
