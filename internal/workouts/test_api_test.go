package workouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/pulsefit/core/internal/apierr"
	"github.com/pulsefit/core/internal/workouts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTestApi_CreateValidation(t *testing.T) {
	ctx := context.Background()
	api := workouts.NewTestApi()

	_, err := api.Create(ctx, uuid.New(), "   ", "")
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))

	created, err := api.Create(ctx, uuid.New(), "  Push Day  ", "chest focus")
	require.NoError(t, err)
	assert.Equal(t, "Push Day", created.Name)
}

func TestTestApi_ExerciseSortOrderAssignment(t *testing.T) {
	ctx := context.Background()
	api := workouts.NewTestApi()
	userID := uuid.New()

	workout, err := api.Create(ctx, userID, "Leg Day", "")
	require.NoError(t, err)

	for i, name := range []string{"Back Squat", "Leg Press", "Calf Raise"} {
		exercise, err := api.CreateExercise(ctx, workouts.CreateExerciseParams{
			WorkoutID:  workout.ID,
			Name:       name,
			TargetSets: 3,
			TargetReps: 8,
		})
		require.NoError(t, err)
		assert.Equal(t, i, exercise.SortOrder)
		assert.Equal(t, workouts.TrackingStrength, exercise.TrackingType)
	}

	all, err := api.FetchAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Exercises, 3)
	assert.Equal(t, "Back Squat", all[0].Exercises[0].Name)
	assert.Equal(t, "Calf Raise", all[0].Exercises[2].Name)
}

func TestTestApi_DeleteCascadesExercises(t *testing.T) {
	ctx := context.Background()
	api := workouts.NewTestApi()
	userID := uuid.New()

	workout, err := api.Create(ctx, userID, "Pull Day", "")
	require.NoError(t, err)

	exercise, err := api.CreateExercise(ctx, workouts.CreateExerciseParams{
		WorkoutID: workout.ID,
		Name:      "Deadlift",
	})
	require.NoError(t, err)

	require.NoError(t, api.Delete(ctx, userID, workout.ID))

	err = api.DeleteExercise(ctx, exercise.ID)
	assert.ErrorIs(t, err, workouts.ErrExerciseNotFound)
}

func TestTestApi_CrossTenantIsolation(t *testing.T) {
	ctx := context.Background()
	api := workouts.NewTestApi()
	owner := uuid.New()
	intruder := uuid.New()

	workout, err := api.Create(ctx, owner, "Push Day", "")
	require.NoError(t, err)

	err = api.Delete(ctx, intruder, workout.ID)
	assert.ErrorIs(t, err, workouts.ErrWorkoutNotFound)

	stolen := *workout
	stolen.UserID = intruder
	_, err = api.Update(ctx, stolen)
	assert.ErrorIs(t, err, workouts.ErrWorkoutNotFound)
}

func TestTestApi_UpdateExerciseRequiresSingleScope(t *testing.T) {
	ctx := context.Background()
	api := workouts.NewTestApi()
	workoutID := uuid.New()
	ownerID := uuid.New()

	_, err := api.UpdateExercise(ctx, workouts.Exercise{
		ID:             uuid.New(),
		WorkoutID:      &workoutID,
		LibraryOwnerID: &ownerID,
		Name:           "Bench Press",
		TrackingType:   workouts.TrackingStrength,
	})
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))

	_, err = api.UpdateExercise(ctx, workouts.Exercise{
		ID:           uuid.New(),
		Name:         "Bench Press",
		TrackingType: workouts.TrackingStrength,
	})
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
}

func TestSortExercises_TiebreakByCreation(t *testing.T) {
	workoutID := uuid.New()
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	older := workouts.Exercise{ID: uuid.New(), WorkoutID: &workoutID, Name: "Row", SortOrder: 1, CreatedAt: base}
	newer := workouts.Exercise{ID: uuid.New(), WorkoutID: &workoutID, Name: "Curl", SortOrder: 1, CreatedAt: base.Add(time.Minute)}
	first := workouts.Exercise{ID: uuid.New(), WorkoutID: &workoutID, Name: "Pull-up", SortOrder: 0, CreatedAt: base.Add(time.Hour)}

	exercises := []workouts.Exercise{newer, older, first}
	workouts.SortExercises(exercises)

	assert.Equal(t, "Pull-up", exercises[0].Name)
	assert.Equal(t, "Row", exercises[1].Name)
	assert.Equal(t, "Curl", exercises[2].Name)
}
