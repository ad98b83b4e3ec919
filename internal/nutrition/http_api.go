package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const foodEntriesTable = "food_entries"

// HttpApi is the remote nutrition repository, backed by the hosted REST
// interface. All reads and writes are scoped to the owning user.
type HttpApi struct {
	client *backend.Client

	// injectable for day-boundary tests
	nowFunc func() time.Time
}

func NewHttpApi(client *backend.Client) *HttpApi {
	return &HttpApi{
		client:  client,
		nowFunc: time.Now,
	}
}

func (api *HttpApi) AddEntry(ctx context.Context, entry FoodEntry) (_ *FoodEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.addEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = api.nowFunc()
	}

	var inserted foodEntryRow
	if err := api.client.From(foodEntriesTable).
		Insert(foodEntryInsertRow{
			UserID:   entry.UserID,
			Name:     entry.Name,
			Calories: entry.Calories,
			Protein:  entry.Protein,
			Carbs:    entry.Carbs,
			Fat:      entry.Fat,
			LoggedAt: entry.LoggedAt,
		}).
		Single().
		Execute(ctx, &inserted); err != nil {
		return nil, fmt.Errorf("add food entry: %w", err)
	}

	span.SetAttributes(attribute.String("entry.id", inserted.ID.String()))
	result := inserted.toDomain()
	return &result, nil
}

func (api *HttpApi) UpdateEntry(ctx context.Context, entry FoodEntry) (_ *FoodEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.updateEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	var updated foodEntryRow
	if err := api.client.From(foodEntriesTable).
		Update(map[string]any{
			"name":     entry.Name,
			"calories": entry.Calories,
			"protein":  entry.Protein,
			"carbs":    entry.Carbs,
			"fat":      entry.Fat,
		}).
		Eq("id", entry.ID.String()).
		Eq("user_id", entry.UserID.String()).
		Single().
		Execute(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update food entry: %w", err)
	}

	result := updated.toDomain()
	return &result, nil
}

func (api *HttpApi) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.deleteEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := api.client.From(foodEntriesTable).
		Delete().
		Eq("id", entryID.String()).
		Eq("user_id", userID.String()).
		Execute(ctx, nil); err != nil {
		return fmt.Errorf("delete food entry: %w", err)
	}
	return nil
}

func (api *HttpApi) EntriesForToday(ctx context.Context, userID uuid.UUID) ([]FoodEntry, error) {
	now := api.nowFunc()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return api.entriesBetween(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
}

func (api *HttpApi) EntriesForLastNDays(ctx context.Context, userID uuid.UUID, days int) ([]FoodEntry, error) {
	now := api.nowFunc()
	return api.entriesBetween(ctx, userID, now.AddDate(0, 0, -days), now)
}

// entriesBetween fetches entries in the half-open window [from, to), so
// an entry stamped exactly at the next day's midnight belongs to that
// next day.
func (api *HttpApi) entriesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (_ []FoodEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.entriesBetween")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rows []foodEntryRow
	if err := api.client.From(foodEntriesTable).
		Select().
		Eq("user_id", userID.String()).
		Gte("logged_at", backend.FormatTime(from)).
		Lt("logged_at", backend.FormatTime(to)).
		Order("logged_at", false).
		Execute(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fetch food entries: %w", err)
	}

	entries := make([]FoodEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toDomain())
	}
	return entries, nil
}
