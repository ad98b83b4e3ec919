package nutrition_test

import (
	"context"
	"testing"
	"time"

	"github.com/pulsefit/core/internal/nutrition"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestApi_EntriesForToday(t *testing.T) {
	api := nutrition.NewTestApi()
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
	api.NowFunc = func() time.Time { return now }

	userID := uuid.New()
	ctx := context.Background()

	_, err := api.AddEntry(ctx, nutrition.FoodEntry{
		UserID: userID, Name: "breakfast", Calories: 400,
		LoggedAt: now.Add(-2 * time.Hour),
	})
	require.NoError(t, err)
	_, err = api.AddEntry(ctx, nutrition.FoodEntry{
		UserID: userID, Name: "yesterday dinner", Calories: 700,
		LoggedAt: now.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	// a few minutes past local midnight still counts as today
	_, err = api.AddEntry(ctx, nutrition.FoodEntry{
		UserID: userID, Name: "midnight snack", Calories: 150,
		LoggedAt: time.Date(2025, 3, 10, 0, 5, 0, 0, time.Local),
	})
	require.NoError(t, err)

	today, err := api.EntriesForToday(ctx, userID)
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, "breakfast", today[0].Name)
	assert.Equal(t, "midnight snack", today[1].Name)
}

func TestTestApi_EntriesForToday_MidnightBoundary(t *testing.T) {
	api := nutrition.NewTestApi()
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
	api.NowFunc = func() time.Time { return now }

	userID := uuid.New()
	ctx := context.Background()
	nextMidnight := time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)

	// stamped exactly at the next local midnight: belongs to tomorrow
	_, err := api.AddEntry(ctx, nutrition.FoodEntry{
		UserID: userID, Name: "tomorrow breakfast", Calories: 300,
		LoggedAt: nextMidnight,
	})
	require.NoError(t, err)
	_, err = api.AddEntry(ctx, nutrition.FoodEntry{
		UserID: userID, Name: "late dinner", Calories: 600,
		LoggedAt: nextMidnight.Add(-time.Second),
	})
	require.NoError(t, err)

	today, err := api.EntriesForToday(ctx, userID)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "late dinner", today[0].Name)
}

func TestTestApi_EntriesForLastNDays(t *testing.T) {
	api := nutrition.NewTestApi()
	now := time.Now()
	userID := uuid.New()
	ctx := context.Background()

	for daysAgo := 0; daysAgo < 10; daysAgo++ {
		_, err := api.AddEntry(ctx, nutrition.FoodEntry{
			UserID: userID, Name: "meal", Calories: 100,
			LoggedAt: now.AddDate(0, 0, -daysAgo).Add(-time.Minute),
		})
		require.NoError(t, err)
	}

	lastWeek, err := api.EntriesForLastNDays(ctx, userID, 7)
	require.NoError(t, err)
	assert.Len(t, lastWeek, 7)
}

func TestTestApi_UpdateAndDelete(t *testing.T) {
	api := nutrition.NewTestApi()
	userID := uuid.New()
	ctx := context.Background()

	added, err := api.AddEntry(ctx, nutrition.FoodEntry{
		UserID: userID, Name: "rice", Calories: 200, Carbs: 45,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, added.ID)
	require.False(t, added.LoggedAt.IsZero())

	added.Calories = 210
	updated, err := api.UpdateEntry(ctx, *added)
	require.NoError(t, err)
	assert.Equal(t, 210, updated.Calories)

	require.NoError(t, api.DeleteEntry(ctx, userID, added.ID))
	assert.ErrorIs(t, api.DeleteEntry(ctx, userID, added.ID), nutrition.ErrEntryNotFound)
}

func TestTestApi_CrossTenantIsolation(t *testing.T) {
	api := nutrition.NewTestApi()
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	entryA, err := api.AddEntry(ctx, nutrition.FoodEntry{
		UserID: userA, Name: "a's lunch", Calories: 500, LoggedAt: time.Now(),
	})
	require.NoError(t, err)
	_, err = api.AddEntry(ctx, nutrition.FoodEntry{
		UserID: userB, Name: "b's lunch", Calories: 600, LoggedAt: time.Now(),
	})
	require.NoError(t, err)

	entriesB, err := api.EntriesForToday(ctx, userB)
	require.NoError(t, err)
	require.Len(t, entriesB, 1)
	assert.Equal(t, "b's lunch", entriesB[0].Name)

	// user B cannot touch user A's rows
	assert.ErrorIs(t, api.DeleteEntry(ctx, userB, entryA.ID), nutrition.ErrEntryNotFound)
	entryA.UserID = userB
	_, err = api.UpdateEntry(ctx, *entryA)
	assert.ErrorIs(t, err, nutrition.ErrEntryNotFound)
}
