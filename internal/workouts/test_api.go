package workouts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TestApi is an in-memory workouts repository used in tests and by the
// offline client bundle.
type TestApi struct {
	mutex     sync.Mutex
	workouts  map[uuid.UUID]Workout
	exercises map[uuid.UUID]Exercise

	NowFunc func() time.Time
}

func NewTestApi() *TestApi {
	return &TestApi{
		workouts:  map[uuid.UUID]Workout{},
		exercises: map[uuid.UUID]Exercise{},
		NowFunc:   time.Now,
	}
}

func (api *TestApi) FetchAll(_ context.Context, userID uuid.UUID) ([]Workout, error) {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	var workouts []Workout
	for _, w := range api.workouts {
		if w.UserID != userID {
			continue
		}
		w.Exercises = api.exercisesForLocked(w.ID)
		workouts = append(workouts, w)
	}
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].CreatedAt.After(workouts[j].CreatedAt)
	})
	return workouts, nil
}

func (api *TestApi) exercisesForLocked(workoutID uuid.UUID) []Exercise {
	var exercises []Exercise
	for _, e := range api.exercises {
		if e.WorkoutID != nil && *e.WorkoutID == workoutID {
			exercises = append(exercises, e)
		}
	}
	SortExercises(exercises)
	return exercises
}

func (api *TestApi) Create(_ context.Context, userID uuid.UUID, name, notes string) (*Workout, error) {
	if err := validateWorkoutName(name); err != nil {
		return nil, err
	}

	api.mutex.Lock()
	defer api.mutex.Unlock()

	workout := Workout{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Notes:     notes,
		CreatedAt: api.NowFunc(),
	}
	api.workouts[workout.ID] = workout
	return &workout, nil
}

func (api *TestApi) Update(_ context.Context, workout Workout) (*Workout, error) {
	if err := validateWorkoutName(workout.Name); err != nil {
		return nil, err
	}

	api.mutex.Lock()
	defer api.mutex.Unlock()

	existing, ok := api.workouts[workout.ID]
	if !ok || existing.UserID != workout.UserID {
		return nil, ErrWorkoutNotFound
	}

	existing.Name = strings.TrimSpace(workout.Name)
	existing.Notes = workout.Notes
	api.workouts[workout.ID] = existing

	existing.Exercises = api.exercisesForLocked(existing.ID)
	return &existing, nil
}

func (api *TestApi) Delete(_ context.Context, userID, workoutID uuid.UUID) error {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	existing, ok := api.workouts[workoutID]
	if !ok || existing.UserID != userID {
		return ErrWorkoutNotFound
	}

	delete(api.workouts, workoutID)
	for id, e := range api.exercises {
		if e.WorkoutID != nil && *e.WorkoutID == workoutID {
			delete(api.exercises, id)
		}
	}
	return nil
}

func (api *TestApi) CreateExercise(_ context.Context, params CreateExerciseParams) (*Exercise, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	api.mutex.Lock()
	defer api.mutex.Unlock()

	if _, ok := api.workouts[params.WorkoutID]; !ok {
		return nil, ErrWorkoutNotFound
	}

	trackingType := params.TrackingType
	if trackingType == "" {
		trackingType = TrackingStrength
	}

	workoutID := params.WorkoutID
	exercise := Exercise{
		ID:           uuid.New(),
		WorkoutID:    &workoutID,
		Name:         strings.TrimSpace(params.Name),
		Category:     params.Category,
		TargetSets:   params.TargetSets,
		TargetReps:   params.TargetReps,
		TrackingType: trackingType,
		SortOrder:    len(api.exercisesForLocked(params.WorkoutID)),
		CreatedAt:    api.NowFunc(),
	}
	api.exercises[exercise.ID] = exercise
	return &exercise, nil
}

func (api *TestApi) UpdateExercise(_ context.Context, exercise Exercise) (*Exercise, error) {
	if err := validateExercise(exercise); err != nil {
		return nil, err
	}

	api.mutex.Lock()
	defer api.mutex.Unlock()

	existing, ok := api.exercises[exercise.ID]
	if !ok {
		return nil, ErrExerciseNotFound
	}

	existing.Name = strings.TrimSpace(exercise.Name)
	existing.Category = exercise.Category
	existing.TargetSets = exercise.TargetSets
	existing.TargetReps = exercise.TargetReps
	existing.TrackingType = exercise.TrackingType
	existing.SortOrder = exercise.SortOrder
	api.exercises[exercise.ID] = existing
	return &existing, nil
}

func (api *TestApi) DeleteExercise(_ context.Context, exerciseID uuid.UUID) error {
	api.mutex.Lock()
	defer api.mutex.Unlock()

	if _, ok := api.exercises[exerciseID]; !ok {
		return ErrExerciseNotFound
	}
	delete(api.exercises, exerciseID)
	return nil
}
