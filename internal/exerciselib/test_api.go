package exerciselib

import (
	"context"

	"github.com/pulsefit/core/internal/workouts"

	"github.com/google/uuid"
)

// TestApi serves a fixed starter catalog.
type TestApi struct{}

func NewTestApi() *TestApi {
	return &TestApi{}
}

func (api *TestApi) FetchLibrary(_ context.Context, ownerID uuid.UUID) ([]workouts.Exercise, error) {
	entries := []struct {
		name         string
		category     string
		trackingType workouts.TrackingType
	}{
		{"Back Squat", "Legs", workouts.TrackingStrength},
		{"Bench Press", "Push", workouts.TrackingStrength},
		{"Deadlift", "Pull", workouts.TrackingStrength},
		{"Treadmill Run", "Cardio", workouts.TrackingDistanceTime},
	}

	library := make([]workouts.Exercise, 0, len(entries))
	for _, e := range entries {
		owner := ownerID
		library = append(library, workouts.Exercise{
			ID:             uuid.New(),
			LibraryOwnerID: &owner,
			Name:           e.name,
			Category:       e.category,
			TrackingType:   e.trackingType,
		})
	}
	return library, nil
}
