package checkins

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pulsefit/core/internal/apierr"

	"github.com/google/uuid"
)

// TestApi is an in-memory check-ins repository used in tests and by the
// offline client bundle.
type TestApi struct {
	mutex    sync.Mutex
	checkIns map[uuid.UUID]CheckIn
	sets     map[uuid.UUID]ExerciseSet
	meals    []MealCalories
}

func NewTestApi() *TestApi {
	return &TestApi{
		checkIns: map[uuid.UUID]CheckIn{},
		sets:     map[uuid.UUID]ExerciseSet{},
	}
}

func (api *TestApi) Start(_ context.Context, userID, workoutID uuid.UUID, startedAt time.Time) (*CheckIn, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	for _, c := range api.checkIns {
		if c.UserID == userID && c.IsActive() {
			return nil, apierr.Validation("check-in already active")
		}
	}

	checkIn := CheckIn{
		ID:        uuid.New(),
		UserID:    userID,
		WorkoutID: workoutID,
		StartedAt: startedAt,
	}
	api.checkIns[checkIn.ID] = checkIn
	return &checkIn, nil
}

func (api *TestApi) Finish(_ context.Context, checkInID uuid.UUID, endedAt time.Time) error {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	checkIn, ok := api.checkIns[checkInID]
	if !ok {
		return ErrCheckInNotFound
	}
	if !checkIn.IsActive() {
		return nil
	}

	checkIn.EndedAt = &endedAt
	api.checkIns[checkInID] = checkIn
	return nil
}

func (api *TestApi) Active(_ context.Context, userID uuid.UUID) (*CheckIn, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	for _, c := range api.checkIns {
		if c.UserID == userID && c.IsActive() {
			active := c
			return &active, nil
		}
	}
	return nil, nil
}

func (api *TestApi) AddSet(_ context.Context, params AddSetParams) (*ExerciseSet, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	api.mutex.Lock()
	defer api.mutex.Unlock()

	if _, ok := api.checkIns[params.CheckInID]; !ok {
		return nil, ErrCheckInNotFound
	}

	set := ExerciseSet{
		ID:                   uuid.New(),
		CheckInID:            params.CheckInID,
		ExerciseID:           params.ExerciseID,
		SetIndex:             params.SetIndex,
		Reps:                 params.Reps,
		Weight:               params.Weight,
		StartedAt:            params.StartedAt,
		EndedAt:              params.EndedAt,
		RestSecondsBeforeSet: params.RestSecondsBeforeSet,
	}
	api.sets[set.ID] = set
	return &set, nil
}

func (api *TestApi) FetchSets(_ context.Context, checkInID uuid.UUID) ([]ExerciseSet, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	var sets []ExerciseSet
	for _, s := range api.sets {
		if s.CheckInID == checkInID {
			sets = append(sets, s)
		}
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].SetIndex < sets[j].SetIndex
	})
	return sets, nil
}

func (api *TestApi) SetsForExercise(_ context.Context, exerciseID uuid.UUID) ([]ExerciseSet, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	var sets []ExerciseSet
	for _, s := range api.sets {
		if s.ExerciseID == exerciseID {
			sets = append(sets, s)
		}
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].StartedAt.Before(sets[j].StartedAt)
	})
	return sets, nil
}

func (api *TestApi) FetchProgress(_ context.Context, userID uuid.UUID, from, to time.Time) ([]ProgressSnapshot, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	var checkIns []CheckIn
	for _, c := range api.checkIns {
		if c.UserID == userID && !c.StartedAt.Before(from) && !c.StartedAt.After(to) {
			checkIns = append(checkIns, c)
		}
	}

	var sets []ExerciseSet
	for _, s := range api.sets {
		sets = append(sets, s)
	}

	return BuildProgress(checkIns, sets, api.meals), nil
}

// AddMealCalories seeds meal-log calories for progress aggregation. The
// remote adapter reads these from the meal tables.
func (api *TestApi) AddMealCalories(eatenAt time.Time, calories int) {
	api.mutex.Lock()
	defer api.mutex.Unlock()
	api.meals = append(api.meals, MealCalories{EatenAt: eatenAt, Calories: calories})
}
