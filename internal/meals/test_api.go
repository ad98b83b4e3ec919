package meals

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TestApi is an in-memory meals repository used in tests and by the
// offline client bundle.
type TestApi struct {
	mutex sync.Mutex
	meals map[uuid.UUID]Meal
	logs  map[uuid.UUID]MealLog

	NowFunc func() time.Time
}

func NewTestApi() *TestApi {
	return &TestApi{
		meals:   map[uuid.UUID]Meal{},
		logs:    map[uuid.UUID]MealLog{},
		NowFunc: time.Now,
	}
}

func (api *TestApi) FetchAll(_ context.Context, userID uuid.UUID) ([]Meal, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	var meals []Meal
	for _, m := range api.meals {
		if m.UserID == userID {
			meals = append(meals, m)
		}
	}
	sort.Slice(meals, func(i, j int) bool {
		return meals[i].CreatedAt.After(meals[j].CreatedAt)
	})
	return meals, nil
}

func (api *TestApi) Create(_ context.Context, meal Meal) (*Meal, error) {
	if err := validateMeal(meal); err != nil {
		return nil, err
	}

	api.mutex.Lock()
	defer api.mutex.Unlock()

	meal.ID = uuid.New()
	meal.CreatedAt = api.NowFunc()
	api.meals[meal.ID] = meal
	return &meal, nil
}

func (api *TestApi) Update(_ context.Context, meal Meal) (*Meal, error) {
	if err := validateMeal(meal); err != nil {
		return nil, err
	}

	api.mutex.Lock()
	defer api.mutex.Unlock()

	existing, ok := api.meals[meal.ID]
	if !ok || existing.UserID != meal.UserID {
		return nil, ErrMealNotFound
	}

	meal.CreatedAt = existing.CreatedAt
	api.meals[meal.ID] = meal
	return &meal, nil
}

func (api *TestApi) Delete(_ context.Context, userID, mealID uuid.UUID) error {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	existing, ok := api.meals[mealID]
	if !ok || existing.UserID != userID {
		return ErrMealNotFound
	}

	delete(api.meals, mealID)
	return nil
}

func (api *TestApi) LogConsumption(_ context.Context, userID, mealID uuid.UUID, eatenAt time.Time) (*MealLog, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	mealLog := MealLog{
		ID:      uuid.New(),
		UserID:  userID,
		MealID:  mealID,
		EatenAt: eatenAt,
	}
	api.logs[mealLog.ID] = mealLog
	return &mealLog, nil
}

func (api *TestApi) FetchLogs(_ context.Context, userID uuid.UUID) ([]MealLog, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	var logs []MealLog
	for _, l := range api.logs {
		if l.UserID == userID {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].EatenAt.After(logs[j].EatenAt)
	})
	return logs, nil
}
