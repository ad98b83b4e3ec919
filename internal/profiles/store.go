package profiles

import (
	"strings"
	"sync"

	"github.com/pulsefit/core/internal/apierr"
)

// Store keeps the device's profile. Reads before the first save return
// the default profile.
type Store struct {
	mutex   sync.Mutex
	profile *Profile
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load() Profile {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.profile == nil {
		defaultProfile := DefaultProfile()
		s.profile = &defaultProfile
	}
	return *s.profile
}

func (s *Store) Save(profile Profile) error {
	if strings.TrimSpace(profile.DisplayName) == "" {
		return apierr.Validation("display name empty")
	}
	if !profile.Units.Valid() {
		return apierr.Validation("unknown units: " + string(profile.Units))
	}
	if !profile.ProgressionMethod.Valid() {
		return apierr.Validation("unknown progression method: " + string(profile.ProgressionMethod))
	}
	if profile.WeeklyGymGoal < 0 || profile.CalorieGoal < 0 ||
		profile.ProteinGoal < 0 || profile.CarbGoal < 0 || profile.FatGoal < 0 {
		return apierr.Validation("goals must not be negative")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.profile = &profile
	return nil
}
