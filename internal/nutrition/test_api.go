package nutrition

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TestApi is the in-memory nutrition repository. All mutations are
// serialized through the mutex so it is a legitimate stand-in for the
// remote variant in concurrent callers.
type TestApi struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*FoodEntry

	NowFunc func() time.Time
}

func NewTestApi() *TestApi {
	return &TestApi{
		entries: make(map[uuid.UUID]*FoodEntry),
		NowFunc: time.Now,
	}
}

func (api *TestApi) AddEntry(_ context.Context, entry FoodEntry) (*FoodEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	api.mu.Lock()
	defer api.mu.Unlock()

	entry.ID = uuid.New()
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = api.NowFunc()
	}
	api.entries[entry.ID] = &entry

	result := entry
	return &result, nil
}

func (api *TestApi) UpdateEntry(_ context.Context, entry FoodEntry) (*FoodEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	api.mu.Lock()
	defer api.mu.Unlock()

	existing, ok := api.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return nil, ErrEntryNotFound
	}

	entry.LoggedAt = existing.LoggedAt
	api.entries[entry.ID] = &entry

	result := entry
	return &result, nil
}

func (api *TestApi) DeleteEntry(_ context.Context, userID, entryID uuid.UUID) error {
	api.mu.Lock()
	defer api.mu.Unlock()

	existing, ok := api.entries[entryID]
	if !ok || existing.UserID != userID {
		return ErrEntryNotFound
	}
	delete(api.entries, entryID)
	return nil
}

func (api *TestApi) EntriesForToday(_ context.Context, userID uuid.UUID) ([]FoodEntry, error) {
	now := api.NowFunc()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return api.entriesBetween(userID, dayStart, dayStart.AddDate(0, 0, 1)), nil
}

func (api *TestApi) EntriesForLastNDays(_ context.Context, userID uuid.UUID, days int) ([]FoodEntry, error) {
	now := api.NowFunc()
	return api.entriesBetween(userID, now.AddDate(0, 0, -days), now), nil
}

func (api *TestApi) entriesBetween(userID uuid.UUID, from, to time.Time) []FoodEntry {
	api.mu.Lock()
	defer api.mu.Unlock()

	var result []FoodEntry
	for _, e := range api.entries {
		if e.UserID != userID {
			continue
		}
		// half-open window [from, to)
		if e.LoggedAt.Before(from) || !e.LoggedAt.Before(to) {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LoggedAt.After(result[j].LoggedAt)
	})
	return result
}
