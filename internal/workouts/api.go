package workouts

import (
	"context"
	"errors"
	"strings"

	"github.com/pulsefit/core/internal/apierr"

	"github.com/google/uuid"
)

var _ Api = (*HttpApi)(nil)
var _ Api = (*TestApi)(nil)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

type Api interface {
	// FetchAll returns the user's workouts with their exercises embedded,
	// ordered for display.
	FetchAll(ctx context.Context, userID uuid.UUID) ([]Workout, error)
	Create(ctx context.Context, userID uuid.UUID, name, notes string) (*Workout, error)
	Update(ctx context.Context, workout Workout) (*Workout, error)
	// Delete removes the workout together with its exercises.
	Delete(ctx context.Context, userID, workoutID uuid.UUID) error

	CreateExercise(ctx context.Context, params CreateExerciseParams) (*Exercise, error)
	UpdateExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID uuid.UUID) error
}

type CreateExerciseParams struct {
	WorkoutID    uuid.UUID
	Name         string
	Category     string
	TargetSets   int
	TargetReps   int
	TrackingType TrackingType
}

func validateWorkoutName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apierr.Validation("workout name empty")
	}
	return nil
}

func (p CreateExerciseParams) validate() error {
	if p.WorkoutID == uuid.Nil {
		return apierr.Validation("exercise workout id missing")
	}
	if strings.TrimSpace(p.Name) == "" {
		return apierr.Validation("exercise name empty")
	}
	if p.TargetSets < 0 || p.TargetReps < 0 {
		return apierr.Validation("exercise targets must not be negative")
	}
	if p.TrackingType != "" && !p.TrackingType.Valid() {
		return apierr.Validation("unknown tracking type: " + string(p.TrackingType))
	}
	return nil
}

func validateExercise(exercise Exercise) error {
	if (exercise.WorkoutID == nil) == (exercise.LibraryOwnerID == nil) {
		return apierr.Validation("exercise must be either workout-scoped or library-scoped")
	}
	if strings.TrimSpace(exercise.Name) == "" {
		return apierr.Validation("exercise name empty")
	}
	if exercise.TargetSets < 0 || exercise.TargetReps < 0 {
		return apierr.Validation("exercise targets must not be negative")
	}
	if !exercise.TrackingType.Valid() {
		return apierr.Validation("unknown tracking type: " + string(exercise.TrackingType))
	}
	return nil
}
