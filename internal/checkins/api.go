package checkins

import (
	"context"
	"errors"
	"time"

	"github.com/pulsefit/core/internal/apierr"

	"github.com/google/uuid"
)

var _ Api = (*HttpApi)(nil)
var _ Api = (*TestApi)(nil)

var ErrCheckInNotFound = errors.New("check-in not found")

type Api interface {
	// Start opens a new check-in. A user has at most one active check-in;
	// starting a second one fails with a validation error.
	Start(ctx context.Context, userID, workoutID uuid.UUID, startedAt time.Time) (*CheckIn, error)
	// Finish closes the check-in. Finishing an already-finished check-in
	// is a no-op.
	Finish(ctx context.Context, checkInID uuid.UUID, endedAt time.Time) error
	Active(ctx context.Context, userID uuid.UUID) (*CheckIn, error)
	AddSet(ctx context.Context, params AddSetParams) (*ExerciseSet, error)
	FetchSets(ctx context.Context, checkInID uuid.UUID) ([]ExerciseSet, error)
	// SetsForExercise returns every logged set of the exercise across
	// check-ins, oldest first.
	SetsForExercise(ctx context.Context, exerciseID uuid.UUID) ([]ExerciseSet, error)
	FetchProgress(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]ProgressSnapshot, error)
}

type AddSetParams struct {
	CheckInID            uuid.UUID
	ExerciseID           uuid.UUID
	SetIndex             int
	Reps                 int
	Weight               float64
	StartedAt            time.Time
	EndedAt              time.Time
	RestSecondsBeforeSet int
}

func (p AddSetParams) validate() error {
	if p.CheckInID == uuid.Nil || p.ExerciseID == uuid.Nil {
		return apierr.Validation("set check-in and exercise ids required")
	}
	if p.SetIndex < 1 {
		return apierr.Validation("set index is 1-based")
	}
	if p.Reps < 0 {
		return apierr.Validation("reps must not be negative")
	}
	if p.Weight < 0 {
		return apierr.Validation("weight must not be negative")
	}
	if p.RestSecondsBeforeSet < 0 {
		return apierr.Validation("rest seconds must not be negative")
	}
	return nil
}
