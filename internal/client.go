package internal

import (
	"net/http"
	"time"

	"github.com/pulsefit/core/internal/auth"
	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/internal/checkins"
	"github.com/pulsefit/core/internal/config"
	"github.com/pulsefit/core/internal/exerciselib"
	"github.com/pulsefit/core/internal/meals"
	"github.com/pulsefit/core/internal/nutrition"
	"github.com/pulsefit/core/internal/profiles"
	"github.com/pulsefit/core/internal/stats"
	"github.com/pulsefit/core/internal/workouts"
)

// Clients bundles every repository behind its Api interface. It is the
// only surface cmd/ binaries and app code talk to, so switching between
// the remote backend and the in-memory stack is a constructor choice.
type Clients struct {
	Auth      auth.Api
	Workouts  workouts.Api
	Meals     meals.Api
	Nutrition nutrition.Api
	CheckIns  checkins.Api
	Library   exerciselib.Api
	Profiles  *profiles.Store
	Stats     *stats.Analyzer
}

// NewRemoteClients wires all repositories against the hosted backend.
// The auth client doubles as the session provider for the REST client,
// which keeps token refresh in one place.
func NewRemoteClients(cfg *config.Config, httpClient *http.Client) *Clients {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeoutDuration()}
	}

	authApi := auth.NewHttpApi(cfg.BackendURL, cfg.BackendAnonKey, httpClient)
	restClient := backend.NewClient(cfg.BackendURL, cfg.BackendAnonKey, authApi, httpClient)
	checkInsApi := checkins.NewHttpApi(restClient)

	return &Clients{
		Auth:      authApi,
		Workouts:  workouts.NewHttpApi(restClient),
		Meals:     meals.NewHttpApi(restClient),
		Nutrition: nutrition.NewHttpApi(restClient),
		CheckIns:  checkInsApi,
		Library:   exerciselib.NewHttpApi(restClient),
		Profiles:  profiles.NewStore(),
		Stats:     stats.NewAnalyzer(checkInsApi),
	}
}

// NewInMemoryClients builds the stack on the in-memory repositories.
// A nil nowFunc leaves every repository on the wall clock.
func NewInMemoryClients(nowFunc func() time.Time) *Clients {
	authApi := auth.NewTestApi()
	workoutsApi := workouts.NewTestApi()
	mealsApi := meals.NewTestApi()
	nutritionApi := nutrition.NewTestApi()
	checkInsApi := checkins.NewTestApi()

	if nowFunc != nil {
		authApi.NowFunc = nowFunc
		workoutsApi.NowFunc = nowFunc
		mealsApi.NowFunc = nowFunc
		nutritionApi.NowFunc = nowFunc
	}

	return &Clients{
		Auth:      authApi,
		Workouts:  workoutsApi,
		Meals:     mealsApi,
		Nutrition: nutritionApi,
		CheckIns:  checkInsApi,
		Library:   exerciselib.NewTestApi(),
		Profiles:  profiles.NewStore(),
		Stats:     stats.NewAnalyzer(checkInsApi),
	}
}
