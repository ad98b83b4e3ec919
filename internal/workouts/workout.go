package workouts

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TrackingType says what gets recorded per set for an exercise.
type TrackingType string

const (
	TrackingStrength     TrackingType = "strength"
	TrackingTime         TrackingType = "time"
	TrackingDistanceTime TrackingType = "distanceTime"
)

func (t TrackingType) Valid() bool {
	switch t {
	case TrackingStrength, TrackingTime, TrackingDistanceTime:
		return true
	}
	return false
}

// Workout is a user-defined workout template with its ordered exercises.
type Workout struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	Exercises []Exercise `json:"exercises"`
}

// Exercise is either workout-scoped (WorkoutID set) or a reusable library
// entry (LibraryOwnerID set). Exactly one of the two is non-nil.
type Exercise struct {
	ID             uuid.UUID    `json:"id"`
	WorkoutID      *uuid.UUID   `json:"workoutId,omitempty"`
	LibraryOwnerID *uuid.UUID   `json:"libraryOwnerId,omitempty"`
	Name           string       `json:"name"`
	Category       string       `json:"category,omitempty"`
	TargetSets     int          `json:"targetSets"`
	TargetReps     int          `json:"targetReps"`
	TrackingType   TrackingType `json:"trackingType"`
	SortOrder      int          `json:"sortOrder"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// SortExercises orders exercises the way they appear in the workout editor:
// sort_order ascending, creation time breaking ties.
func SortExercises(exercises []Exercise) {
	sort.SliceStable(exercises, func(i, j int) bool {
		if exercises[i].SortOrder != exercises[j].SortOrder {
			return exercises[i].SortOrder < exercises[j].SortOrder
		}
		return exercises[i].CreatedAt.Before(exercises[j].CreatedAt)
	})
}

type workoutRow struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func (r workoutRow) toDomain(exercises []Exercise) Workout {
	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}
	return Workout{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Notes:     notes,
		CreatedAt: r.CreatedAt,
		Exercises: exercises,
	}
}

type workoutInsertRow struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Notes  *string   `json:"notes"`
}

type exerciseRow struct {
	ID             uuid.UUID    `json:"id"`
	WorkoutID      *uuid.UUID   `json:"workout_id"`
	LibraryOwnerID *uuid.UUID   `json:"library_owner_id"`
	Name           string       `json:"name"`
	Category       *string      `json:"category"`
	TargetSets     int          `json:"target_sets"`
	TargetReps     int          `json:"target_reps"`
	TrackingType   TrackingType `json:"tracking_type"`
	SortOrder      int          `json:"sort_order"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (r exerciseRow) toDomain() Exercise {
	category := ""
	if r.Category != nil {
		category = *r.Category
	}
	trackingType := r.TrackingType
	if !trackingType.Valid() {
		trackingType = TrackingStrength
	}
	return Exercise{
		ID:             r.ID,
		WorkoutID:      r.WorkoutID,
		LibraryOwnerID: r.LibraryOwnerID,
		Name:           r.Name,
		Category:       category,
		TargetSets:     r.TargetSets,
		TargetReps:     r.TargetReps,
		TrackingType:   trackingType,
		SortOrder:      r.SortOrder,
		CreatedAt:      r.CreatedAt,
	}
}

type exerciseInsertRow struct {
	WorkoutID      *uuid.UUID   `json:"workout_id,omitempty"`
	LibraryOwnerID *uuid.UUID   `json:"library_owner_id,omitempty"`
	Name           string       `json:"name"`
	Category       *string      `json:"category,omitempty"`
	TargetSets     int          `json:"target_sets"`
	TargetReps     int          `json:"target_reps"`
	TrackingType   TrackingType `json:"tracking_type"`
	SortOrder      int          `json:"sort_order"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
