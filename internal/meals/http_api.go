package meals

import (
	"context"
	"fmt"
	"time"

	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	mealsTable    = "meals"
	mealLogsTable = "meal_logs"
)

// HttpApi is the remote meals repository.
type HttpApi struct {
	client *backend.Client
}

func NewHttpApi(client *backend.Client) *HttpApi {
	return &HttpApi{client: client}
}

func (api *HttpApi) FetchAll(ctx context.Context, userID uuid.UUID) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.fetchAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rows []mealRow
	if err := api.client.From(mealsTable).
		Select().
		Eq("user_id", userID.String()).
		Order("created_at", false).
		Execute(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fetch meals: %w", err)
	}

	meals := make([]Meal, 0, len(rows))
	for _, r := range rows {
		meals = append(meals, r.toDomain())
	}
	span.SetAttributes(attribute.Int("meals.count", len(meals)))
	return meals, nil
}

func (api *HttpApi) Create(ctx context.Context, meal Meal) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateMeal(meal); err != nil {
		return nil, err
	}

	var inserted mealRow
	if err := api.client.From(mealsTable).
		Insert(mealInsertRow{
			UserID:   meal.UserID,
			Name:     meal.Name,
			Calories: meal.Calories,
			Protein:  meal.Protein,
			Carbs:    meal.Carbs,
			Fat:      meal.Fat,
		}).
		Single().
		Execute(ctx, &inserted); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}

	log.Debugf("meals: created meal %s for user %s", inserted.ID, meal.UserID)
	result := inserted.toDomain()
	return &result, nil
}

func (api *HttpApi) Update(ctx context.Context, meal Meal) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateMeal(meal); err != nil {
		return nil, err
	}

	var updated mealRow
	if err := api.client.From(mealsTable).
		Update(map[string]any{
			"name":     meal.Name,
			"calories": meal.Calories,
			"protein":  meal.Protein,
			"carbs":    meal.Carbs,
			"fat":      meal.Fat,
		}).
		Eq("id", meal.ID.String()).
		Eq("user_id", meal.UserID.String()).
		Single().
		Execute(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}

	result := updated.toDomain()
	return &result, nil
}

func (api *HttpApi) Delete(ctx context.Context, userID, mealID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := api.client.From(mealsTable).
		Delete().
		Eq("id", mealID.String()).
		Eq("user_id", userID.String()).
		Execute(ctx, nil); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

func (api *HttpApi) LogConsumption(ctx context.Context, userID, mealID uuid.UUID, eatenAt time.Time) (_ *MealLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.logConsumption")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var inserted mealLogRow
	if err := api.client.From(mealLogsTable).
		Insert(mealLogInsertRow{
			UserID:  userID,
			MealID:  mealID,
			EatenAt: eatenAt,
		}).
		Single().
		Execute(ctx, &inserted); err != nil {
		return nil, fmt.Errorf("log meal consumption: %w", err)
	}

	result := inserted.toDomain()
	return &result, nil
}

func (api *HttpApi) FetchLogs(ctx context.Context, userID uuid.UUID) (_ []MealLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.fetchLogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rows []mealLogRow
	if err := api.client.From(mealLogsTable).
		Select().
		Eq("user_id", userID.String()).
		Order("eaten_at", false).
		Execute(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fetch meal logs: %w", err)
	}

	logs := make([]MealLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, r.toDomain())
	}
	return logs, nil
}
