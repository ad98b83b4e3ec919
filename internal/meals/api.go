package meals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pulsefit/core/internal/apierr"

	"github.com/google/uuid"
)

var _ Api = (*HttpApi)(nil)
var _ Api = (*TestApi)(nil)

var ErrMealNotFound = errors.New("meal not found")

type Api interface {
	FetchAll(ctx context.Context, userID uuid.UUID) ([]Meal, error)
	Create(ctx context.Context, meal Meal) (*Meal, error)
	Update(ctx context.Context, meal Meal) (*Meal, error)
	Delete(ctx context.Context, userID, mealID uuid.UUID) error
	LogConsumption(ctx context.Context, userID, mealID uuid.UUID, eatenAt time.Time) (*MealLog, error)
	FetchLogs(ctx context.Context, userID uuid.UUID) ([]MealLog, error)
}

func validateMeal(meal Meal) error {
	if strings.TrimSpace(meal.Name) == "" {
		return apierr.Validation("meal name empty")
	}
	if meal.Calories < 0 || meal.Protein < 0 || meal.Carbs < 0 || meal.Fat < 0 {
		return apierr.Validation("meal macros must not be negative")
	}
	return nil
}
