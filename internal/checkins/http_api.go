package checkins

import (
	"context"
	"fmt"
	"time"

	"github.com/pulsefit/core/internal/apierr"
	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	checkInsTable     = "check_ins"
	exerciseSetsTable = "exercise_sets"
	mealLogsTable     = "meal_logs"
	mealsTable        = "meals"
)

// HttpApi is the remote check-ins repository.
type HttpApi struct {
	client *backend.Client
}

func NewHttpApi(client *backend.Client) *HttpApi {
	return &HttpApi{client: client}
}

func (api *HttpApi) Start(ctx context.Context, userID, workoutID uuid.UUID, startedAt time.Time) (_ *CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	active, err := api.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, apierr.Validation("check-in already active")
	}

	var inserted checkInRow
	if err := api.client.From(checkInsTable).
		Insert(checkInInsertRow{
			UserID:    userID,
			WorkoutID: workoutID,
			StartedAt: startedAt,
		}).
		Single().
		Execute(ctx, &inserted); err != nil {
		return nil, fmt.Errorf("start check-in: %w", err)
	}

	log.Debugf("checkins: user %s checked in, check-in %s", userID, inserted.ID)
	result := inserted.toDomain()
	return &result, nil
}

func (api *HttpApi) Finish(ctx context.Context, checkInID uuid.UUID, endedAt time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// only the active row matches, so a second finish updates nothing
	if err := api.client.From(checkInsTable).
		Update(map[string]any{
			"ended_at": backend.FormatTime(endedAt),
		}).
		Eq("id", checkInID.String()).
		Is("ended_at", "null").
		Execute(ctx, nil); err != nil {
		return fmt.Errorf("finish check-in: %w", err)
	}
	return nil
}

func (api *HttpApi) Active(ctx context.Context, userID uuid.UUID) (_ *CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rows []checkInRow
	if err := api.client.From(checkInsTable).
		Select().
		Eq("user_id", userID.String()).
		Is("ended_at", "null").
		Execute(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fetch active check-in: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	result := rows[0].toDomain()
	return &result, nil
}

func (api *HttpApi) AddSet(ctx context.Context, params AddSetParams) (_ *ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.addSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := params.validate(); err != nil {
		return nil, err
	}

	var inserted exerciseSetRow
	if err := api.client.From(exerciseSetsTable).
		Insert(exerciseSetInsertRow{
			CheckInID:            params.CheckInID,
			ExerciseID:           params.ExerciseID,
			SetIndex:             params.SetIndex,
			Reps:                 params.Reps,
			Weight:               params.Weight,
			StartedAt:            params.StartedAt,
			EndedAt:              params.EndedAt,
			RestSecondsBeforeSet: params.RestSecondsBeforeSet,
		}).
		Single().
		Execute(ctx, &inserted); err != nil {
		return nil, fmt.Errorf("add set: %w", err)
	}

	result := inserted.toDomain()
	return &result, nil
}

func (api *HttpApi) FetchSets(ctx context.Context, checkInID uuid.UUID) (_ []ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.fetchSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rows []exerciseSetRow
	if err := api.client.From(exerciseSetsTable).
		Select().
		Eq("check_in_id", checkInID.String()).
		Order("set_index", true).
		Execute(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fetch sets: %w", err)
	}

	sets := make([]ExerciseSet, 0, len(rows))
	for _, r := range rows {
		sets = append(sets, r.toDomain())
	}
	return sets, nil
}

func (api *HttpApi) SetsForExercise(ctx context.Context, exerciseID uuid.UUID) (_ []ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.setsForExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rows []exerciseSetRow
	if err := api.client.From(exerciseSetsTable).
		Select().
		Eq("exercise_id", exerciseID.String()).
		Order("started_at", true).
		Execute(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fetch sets for exercise: %w", err)
	}

	sets := make([]ExerciseSet, 0, len(rows))
	for _, r := range rows {
		sets = append(sets, r.toDomain())
	}
	return sets, nil
}

func (api *HttpApi) FetchProgress(ctx context.Context, userID uuid.UUID, from, to time.Time) (_ []ProgressSnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.fetchProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var checkInRows []checkInRow
	if err := api.client.From(checkInsTable).
		Select().
		Eq("user_id", userID.String()).
		Gte("started_at", backend.FormatTime(from)).
		Lte("started_at", backend.FormatTime(to)).
		Execute(ctx, &checkInRows); err != nil {
		return nil, fmt.Errorf("fetch check-ins: %w", err)
	}

	checkIns := make([]CheckIn, 0, len(checkInRows))
	for _, r := range checkInRows {
		checkIns = append(checkIns, r.toDomain())
	}

	var sets []ExerciseSet
	for _, c := range checkIns {
		checkInSets, err := api.FetchSets(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, checkInSets...)
	}

	var logRows []mealLogProgressRow
	if err := api.client.From(mealLogsTable).
		Select().
		Eq("user_id", userID.String()).
		Gte("eaten_at", backend.FormatTime(from)).
		Lte("eaten_at", backend.FormatTime(to)).
		Execute(ctx, &logRows); err != nil {
		return nil, fmt.Errorf("fetch meal logs: %w", err)
	}

	type mealCaloriesRow struct {
		ID       uuid.UUID `json:"id"`
		Calories int       `json:"calories"`
	}
	var mealRows []mealCaloriesRow
	if err := api.client.From(mealsTable).
		Select().
		Eq("user_id", userID.String()).
		Execute(ctx, &mealRows); err != nil {
		return nil, fmt.Errorf("fetch meals: %w", err)
	}

	caloriesByMeal := make(map[uuid.UUID]int, len(mealRows))
	for _, m := range mealRows {
		caloriesByMeal[m.ID] = m.Calories
	}

	meals := make([]MealCalories, 0, len(logRows))
	for _, l := range logRows {
		meals = append(meals, MealCalories{
			EatenAt:  l.EatenAt,
			Calories: caloriesByMeal[l.MealID],
		})
	}

	snapshots := BuildProgress(checkIns, sets, meals)
	span.SetAttributes(attribute.Int("progress.days", len(snapshots)))
	return snapshots, nil
}
