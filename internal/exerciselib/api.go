package exerciselib

import (
	"context"

	"github.com/pulsefit/core/internal/workouts"

	"github.com/google/uuid"
)

var _ Api = (*HttpApi)(nil)
var _ Api = (*TestApi)(nil)

// Api serves the reusable exercise catalog, distinct from the exercises
// embedded in a workout.
type Api interface {
	FetchLibrary(ctx context.Context, ownerID uuid.UUID) ([]workouts.Exercise, error)
}
