package workouts_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pulsefit/core/internal/apierr"
	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/internal/workouts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSessions struct{}

func (staticSessions) AccessToken(context.Context) (string, error) { return "test-token", nil }
func (staticSessions) Refresh(context.Context) (string, error)     { return "test-token", nil }

type countingTransport struct {
	calls atomic.Int32
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls.Add(1)
	return nil, http.ErrHandlerTimeout
}

func TestCreateWorkout_ValidationSkipsNetwork(t *testing.T) {
	transport := &countingTransport{}
	client := backend.NewClient("http://localhost:1", "anon", staticSessions{}, &http.Client{Transport: transport})
	api := workouts.NewHttpApi(client)

	_, err := api.Create(context.Background(), uuid.New(), "   ", "")
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
	assert.Zero(t, transport.calls.Load())

	_, err = api.CreateExercise(context.Background(), workouts.CreateExerciseParams{
		WorkoutID:  uuid.New(),
		Name:       "Bench Press",
		TargetSets: -1,
	})
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
	assert.Zero(t, transport.calls.Load())
}

func TestFetchAll_EmbedsOrderedExercises(t *testing.T) {
	userID := uuid.New()
	workoutID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/v1/workouts":
			require.Equal(t, "eq."+userID.String(), r.URL.Query().Get("user_id"))
			_, _ = w.Write([]byte(`[{"id": "` + workoutID.String() + `", "user_id": "` + userID.String() + `",
				"name": "Push Day", "notes": null, "created_at": "2026-08-30T10:00:00Z"}]`))
		case "/rest/v1/exercises":
			require.Equal(t, "eq."+workoutID.String(), r.URL.Query().Get("workout_id"))
			require.Equal(t, "sort_order.asc", r.URL.Query().Get("order"))
			// same sort_order, creation time decides
			_, _ = w.Write([]byte(`[
				{"id": "` + uuid.NewString() + `", "workout_id": "` + workoutID.String() + `",
				 "name": "Incline Press", "target_sets": 3, "target_reps": 10,
				 "tracking_type": "strength", "sort_order": 1, "created_at": "2026-08-30T11:00:00Z"},
				{"id": "` + uuid.NewString() + `", "workout_id": "` + workoutID.String() + `",
				 "name": "Bench Press", "target_sets": 3, "target_reps": 8,
				 "tracking_type": "strength", "sort_order": 1, "created_at": "2026-08-30T10:30:00Z"},
				{"id": "` + uuid.NewString() + `", "workout_id": "` + workoutID.String() + `",
				 "name": "Warm-up Row", "target_sets": 1, "target_reps": 0,
				 "tracking_type": "time", "sort_order": 0, "created_at": "2026-08-30T12:00:00Z"}
			]`))
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, "anon", staticSessions{}, server.Client())
	api := workouts.NewHttpApi(client)

	fetched, err := api.FetchAll(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, "Push Day", fetched[0].Name)
	assert.Empty(t, fetched[0].Notes)

	exercises := fetched[0].Exercises
	require.Len(t, exercises, 3)
	assert.Equal(t, "Warm-up Row", exercises[0].Name)
	assert.Equal(t, "Bench Press", exercises[1].Name)
	assert.Equal(t, "Incline Press", exercises[2].Name)
	assert.Equal(t, workouts.TrackingTime, exercises[0].TrackingType)
}

func TestDelete_CascadesExercisesFirst(t *testing.T) {
	userID := uuid.New()
	workoutID := uuid.New()

	var deletes []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deletes = append(deletes, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, "anon", staticSessions{}, server.Client())
	api := workouts.NewHttpApi(client)

	require.NoError(t, api.Delete(context.Background(), userID, workoutID))
	require.Equal(t, []string{"/rest/v1/exercises", "/rest/v1/workouts"}, deletes)
}

func TestCreateExercise_AppendsAtCurrentCount(t *testing.T) {
	workoutID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			// two exercises already in the workout
			_, _ = w.Write([]byte(`[
				{"id": "` + uuid.NewString() + `", "workout_id": "` + workoutID.String() + `",
				 "name": "Bench Press", "tracking_type": "strength", "sort_order": 0,
				 "target_sets": 3, "target_reps": 8, "created_at": "2026-08-30T10:00:00Z"},
				{"id": "` + uuid.NewString() + `", "workout_id": "` + workoutID.String() + `",
				 "name": "Incline Press", "tracking_type": "strength", "sort_order": 1,
				 "target_sets": 3, "target_reps": 10, "created_at": "2026-08-30T10:05:00Z"}
			]`))
			return
		}

		require.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"id": "` + uuid.NewString() + `", "workout_id": "` + workoutID.String() + `",
			"name": "Dips", "tracking_type": "strength", "sort_order": 2,
			"target_sets": 3, "target_reps": 12, "created_at": "2026-08-30T11:00:00Z"}`))
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, "anon", staticSessions{}, server.Client())
	api := workouts.NewHttpApi(client)

	created, err := api.CreateExercise(context.Background(), workouts.CreateExerciseParams{
		WorkoutID:  workoutID,
		Name:       "Dips",
		TargetSets: 3,
		TargetReps: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.SortOrder)
}
