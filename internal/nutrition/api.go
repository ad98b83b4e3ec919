package nutrition

import (
	"context"
	"errors"
	"strings"

	"github.com/pulsefit/core/internal/apierr"

	"github.com/google/uuid"
)

var _ Api = (*HttpApi)(nil)
var _ Api = (*TestApi)(nil)

var ErrEntryNotFound = errors.New("food entry not found")

type Api interface {
	AddEntry(ctx context.Context, entry FoodEntry) (*FoodEntry, error)
	UpdateEntry(ctx context.Context, entry FoodEntry) (*FoodEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	EntriesForToday(ctx context.Context, userID uuid.UUID) ([]FoodEntry, error)
	EntriesForLastNDays(ctx context.Context, userID uuid.UUID, days int) ([]FoodEntry, error)
}

func validateEntry(entry FoodEntry) error {
	if strings.TrimSpace(entry.Name) == "" {
		return apierr.Validation("food entry name empty")
	}
	if entry.Calories < 0 || entry.Protein < 0 || entry.Carbs < 0 || entry.Fat < 0 {
		return apierr.Validation("food entry macros must not be negative")
	}
	return nil
}
