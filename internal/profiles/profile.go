package profiles

import (
	"github.com/google/uuid"
)

type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// ProgressionMethod decides the weight increment applied when suggesting
// the next set for an exercise.
type ProgressionMethod string

const (
	ProgressionDouble ProgressionMethod = "doubleProgression"
	ProgressionLinear ProgressionMethod = "linear"
)

func (m ProgressionMethod) Valid() bool {
	return m == ProgressionDouble || m == ProgressionLinear
}

// Profile holds the user's display settings and nutrition goals. It lives
// on the device, the backend never sees it.
type Profile struct {
	ID                uuid.UUID         `json:"id"`
	DisplayName       string            `json:"displayName"`
	Units             Units             `json:"units"`
	WeeklyGymGoal     int               `json:"weeklyGymGoal"`
	CalorieGoal       int               `json:"calorieGoal"`
	ProteinGoal       int               `json:"proteinGoal"`
	CarbGoal          int               `json:"carbGoal"`
	FatGoal           int               `json:"fatGoal"`
	ProgressionMethod ProgressionMethod `json:"progressionMethod"`
}

func DefaultProfile() Profile {
	return Profile{
		ID:                uuid.New(),
		DisplayName:       "Athlete",
		Units:             UnitsImperial,
		WeeklyGymGoal:     4,
		CalorieGoal:       2500,
		ProteinGoal:       180,
		CarbGoal:          250,
		FatGoal:           70,
		ProgressionMethod: ProgressionDouble,
	}
}
