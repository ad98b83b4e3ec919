package workouts

import (
	"context"
	"fmt"
	"strings"

	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	workoutsTable  = "workouts"
	exercisesTable = "exercises"
)

// HttpApi is the remote workouts repository.
type HttpApi struct {
	client *backend.Client
}

func NewHttpApi(client *backend.Client) *HttpApi {
	return &HttpApi{client: client}
}

func (api *HttpApi) FetchAll(ctx context.Context, userID uuid.UUID) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.fetchAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var workoutRows []workoutRow
	if err := api.client.From(workoutsTable).
		Select().
		Eq("user_id", userID.String()).
		Order("created_at", false).
		Execute(ctx, &workoutRows); err != nil {
		return nil, fmt.Errorf("fetch workouts: %w", err)
	}

	workouts := make([]Workout, 0, len(workoutRows))
	for _, wr := range workoutRows {
		exercises, err := api.exercisesFor(ctx, wr.ID)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, wr.toDomain(exercises))
	}

	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

func (api *HttpApi) exercisesFor(ctx context.Context, workoutID uuid.UUID) ([]Exercise, error) {
	var rows []exerciseRow
	if err := api.client.From(exercisesTable).
		Select().
		Eq("workout_id", workoutID.String()).
		Order("sort_order", true).
		Execute(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fetch exercises for workout %s: %w", workoutID, err)
	}

	exercises := make([]Exercise, 0, len(rows))
	for _, r := range rows {
		exercises = append(exercises, r.toDomain())
	}
	// the backend orders by sort_order only, ties are broken here
	SortExercises(exercises)
	return exercises, nil
}

func (api *HttpApi) Create(ctx context.Context, userID uuid.UUID, name, notes string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateWorkoutName(name); err != nil {
		return nil, err
	}

	var inserted workoutRow
	if err := api.client.From(workoutsTable).
		Insert(workoutInsertRow{
			UserID: userID,
			Name:   strings.TrimSpace(name),
			Notes:  optionalString(notes),
		}).
		Single().
		Execute(ctx, &inserted); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	log.Debugf("workouts: created workout %s for user %s", inserted.ID, userID)
	result := inserted.toDomain(nil)
	return &result, nil
}

func (api *HttpApi) Update(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateWorkoutName(workout.Name); err != nil {
		return nil, err
	}

	var updated workoutRow
	if err := api.client.From(workoutsTable).
		Update(map[string]any{
			"name":  strings.TrimSpace(workout.Name),
			"notes": optionalString(workout.Notes),
		}).
		Eq("id", workout.ID.String()).
		Eq("user_id", workout.UserID.String()).
		Single().
		Execute(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}

	result := updated.toDomain(workout.Exercises)
	return &result, nil
}

func (api *HttpApi) Delete(ctx context.Context, userID, workoutID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// owned exercises go first, the backend has no cascade on this relation
	if err := api.client.From(exercisesTable).
		Delete().
		Eq("workout_id", workoutID.String()).
		Execute(ctx, nil); err != nil {
		return fmt.Errorf("delete workout exercises: %w", err)
	}

	if err := api.client.From(workoutsTable).
		Delete().
		Eq("id", workoutID.String()).
		Eq("user_id", userID.String()).
		Execute(ctx, nil); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

func (api *HttpApi) CreateExercise(ctx context.Context, params CreateExerciseParams) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.createExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := params.validate(); err != nil {
		return nil, err
	}

	// new exercises go to the end of the workout
	existing, err := api.exercisesFor(ctx, params.WorkoutID)
	if err != nil {
		return nil, err
	}

	trackingType := params.TrackingType
	if trackingType == "" {
		trackingType = TrackingStrength
	}

	workoutID := params.WorkoutID
	var inserted exerciseRow
	if err := api.client.From(exercisesTable).
		Insert(exerciseInsertRow{
			WorkoutID:    &workoutID,
			Name:         strings.TrimSpace(params.Name),
			Category:     optionalString(params.Category),
			TargetSets:   params.TargetSets,
			TargetReps:   params.TargetReps,
			TrackingType: trackingType,
			SortOrder:    len(existing),
		}).
		Single().
		Execute(ctx, &inserted); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}

	result := inserted.toDomain()
	return &result, nil
}

func (api *HttpApi) UpdateExercise(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.updateExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateExercise(exercise); err != nil {
		return nil, err
	}

	var updated exerciseRow
	if err := api.client.From(exercisesTable).
		Update(map[string]any{
			"name":          strings.TrimSpace(exercise.Name),
			"category":      optionalString(exercise.Category),
			"target_sets":   exercise.TargetSets,
			"target_reps":   exercise.TargetReps,
			"tracking_type": exercise.TrackingType,
			"sort_order":    exercise.SortOrder,
		}).
		Eq("id", exercise.ID.String()).
		Single().
		Execute(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}

	result := updated.toDomain()
	return &result, nil
}

func (api *HttpApi) DeleteExercise(ctx context.Context, exerciseID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deleteExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := api.client.From(exercisesTable).
		Delete().
		Eq("id", exerciseID.String()).
		Execute(ctx, nil); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}
