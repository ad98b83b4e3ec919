package stats

import (
	"fmt"
	"time"

	"github.com/pulsefit/core/internal/checkins"
	"github.com/pulsefit/core/internal/profiles"
)

const (
	baselineWeight = 45.0
	baselineReps   = 8

	// double progression bumps harder once the top set hits 8 reps
	doubleProgressionIncrement = 5.0
	defaultIncrement           = 2.5
)

// Suggestion is the recommended next working set for an exercise.
type Suggestion struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Reason string  `json:"reason"`
}

// TrainingVolume sums reps × weight over the sets. The unit follows the
// caller's weight unit.
func TrainingVolume(sets []checkins.ExerciseSet) float64 {
	var volume float64
	for _, s := range sets {
		volume += float64(s.Reps) * s.Weight
	}
	return volume
}

// CheckInStreak counts consecutive calendar days with at least one
// check-in, walking backward from today. Day boundaries follow the local
// calendar.
func CheckInStreak(checkIns []checkins.CheckIn, today time.Time) int {
	days := make(map[time.Time]bool, len(checkIns))
	for _, c := range checkIns {
		days[checkins.DayStart(c.StartedAt)] = true
	}
	return streakFrom(days, today)
}

func streakFrom(days map[time.Time]bool, today time.Time) int {
	streak := 0
	for day := checkins.DayStart(today); days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// Suggest picks the heaviest past set of the exercise and recommends it
// plus a progression increment. Ties on weight go to the most recent set.
// Without history it falls back to a fixed baseline.
func Suggest(completedSets []checkins.ExerciseSet, method profiles.ProgressionMethod) Suggestion {
	if len(completedSets) == 0 {
		return Suggestion{
			Weight: baselineWeight,
			Reps:   baselineReps,
			Reason: "Start with a baseline working set",
		}
	}

	best := completedSets[0]
	for _, s := range completedSets[1:] {
		if s.Weight > best.Weight || (s.Weight == best.Weight && s.EndedAt.After(best.EndedAt)) {
			best = s
		}
	}

	increment := defaultIncrement
	if method == profiles.ProgressionDouble && best.Reps >= baselineReps {
		increment = doubleProgressionIncrement
	}

	return Suggestion{
		Weight: best.Weight + increment,
		Reps:   best.Reps,
		Reason: fmt.Sprintf("Last session was completed. Try +%.1f", increment),
	}
}

// RestSeconds is the whole-second gap from the reference point (previous
// completion, or the set's own start when there is none) to the set start,
// clamped at zero.
func RestSeconds(reference, setStart time.Time) int {
	seconds := int(setStart.Sub(reference).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}
