package checkins

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// CheckIn is one gym visit against a workout. It stays active until
// finished; EndedAt is nil exactly while active.
type CheckIn struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	WorkoutID uuid.UUID  `json:"workoutId"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

func (c CheckIn) IsActive() bool {
	return c.EndedAt == nil
}

// ExerciseSet is one logged set within a check-in. Sets are append-only
// for the lifetime of the check-in.
type ExerciseSet struct {
	ID                   uuid.UUID `json:"id"`
	CheckInID            uuid.UUID `json:"checkInId"`
	ExerciseID           uuid.UUID `json:"exerciseId"`
	SetIndex             int       `json:"setIndex"`
	Reps                 int       `json:"reps"`
	Weight               float64   `json:"weight"`
	StartedAt            time.Time `json:"startedAt"`
	EndedAt              time.Time `json:"endedAt"`
	RestSecondsBeforeSet int       `json:"restSecondsBeforeSet"`
}

// DurationSeconds never goes negative, even when device clocks produce
// an end time before the start time.
func (s ExerciseSet) DurationSeconds() int {
	seconds := int(s.EndedAt.Sub(s.StartedAt).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// ProgressSnapshot aggregates one calendar day of training and eating.
type ProgressSnapshot struct {
	Day               time.Time `json:"day"`
	WorkoutsCompleted int       `json:"workoutsCompleted"`
	SetsCompleted     int       `json:"setsCompleted"`
	TotalVolume       float64   `json:"totalVolume"`
	Calories          int       `json:"calories"`
}

// MealCalories is the slice of meal-log data progress aggregation needs.
type MealCalories struct {
	EatenAt  time.Time
	Calories int
}

// DayStart truncates to local midnight. Progress days follow the
// caller's local calendar, not UTC.
func DayStart(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// BuildProgress buckets check-ins, their sets and meal calories per local
// calendar day. Days without a check-in produce no snapshot even when
// meals were logged on them.
func BuildProgress(checkIns []CheckIn, sets []ExerciseSet, meals []MealCalories) []ProgressSnapshot {
	if len(checkIns) == 0 {
		return nil
	}

	setsByCheckIn := make(map[uuid.UUID][]ExerciseSet)
	for _, s := range sets {
		setsByCheckIn[s.CheckInID] = append(setsByCheckIn[s.CheckInID], s)
	}

	caloriesByDay := make(map[time.Time]int)
	for _, m := range meals {
		caloriesByDay[DayStart(m.EatenAt)] += m.Calories
	}

	byDay := make(map[time.Time]*ProgressSnapshot)
	for _, c := range checkIns {
		day := DayStart(c.StartedAt)
		snapshot, ok := byDay[day]
		if !ok {
			snapshot = &ProgressSnapshot{
				Day:      day,
				Calories: caloriesByDay[day],
			}
			byDay[day] = snapshot
		}
		snapshot.WorkoutsCompleted++
		for _, s := range setsByCheckIn[c.ID] {
			snapshot.SetsCompleted++
			snapshot.TotalVolume += float64(s.Reps) * s.Weight
		}
	}

	snapshots := make([]ProgressSnapshot, 0, len(byDay))
	for _, s := range byDay {
		snapshots = append(snapshots, *s)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Day.Before(snapshots[j].Day)
	})
	return snapshots
}

type checkInRow struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	WorkoutID uuid.UUID  `json:"workout_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

func (r checkInRow) toDomain() CheckIn {
	return CheckIn(r)
}

type checkInInsertRow struct {
	UserID    uuid.UUID `json:"user_id"`
	WorkoutID uuid.UUID `json:"workout_id"`
	StartedAt time.Time `json:"started_at"`
}

type exerciseSetRow struct {
	ID                   uuid.UUID `json:"id"`
	CheckInID            uuid.UUID `json:"check_in_id"`
	ExerciseID           uuid.UUID `json:"exercise_id"`
	SetIndex             int       `json:"set_index"`
	Reps                 int       `json:"reps"`
	Weight               float64   `json:"weight"`
	StartedAt            time.Time `json:"started_at"`
	EndedAt              time.Time `json:"ended_at"`
	RestSecondsBeforeSet int       `json:"rest_seconds_before_set"`
}

func (r exerciseSetRow) toDomain() ExerciseSet {
	return ExerciseSet(r)
}

// mealLogProgressRow carries the meal-log columns progress aggregation
// reads. Same key-drift contract as the meals package: the older
// backend named the timestamp column "consumed_at", newer ones
// "eaten_at".
type mealLogProgressRow struct {
	MealID  uuid.UUID
	EatenAt time.Time
}

func (r *mealLogProgressRow) UnmarshalJSON(data []byte) error {
	var wire struct {
		MealID     uuid.UUID  `json:"meal_id"`
		EatenAt    *time.Time `json:"eaten_at"`
		ConsumedAt *time.Time `json:"consumed_at"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.MealID = wire.MealID
	switch {
	case wire.EatenAt != nil:
		r.EatenAt = *wire.EatenAt
	case wire.ConsumedAt != nil:
		r.EatenAt = *wire.ConsumedAt
	}
	return nil
}

type exerciseSetInsertRow struct {
	CheckInID            uuid.UUID `json:"check_in_id"`
	ExerciseID           uuid.UUID `json:"exercise_id"`
	SetIndex             int       `json:"set_index"`
	Reps                 int       `json:"reps"`
	Weight               float64   `json:"weight"`
	StartedAt            time.Time `json:"started_at"`
	EndedAt              time.Time `json:"ended_at"`
	RestSecondsBeforeSet int       `json:"rest_seconds_before_set"`
}
