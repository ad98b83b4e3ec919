package nutrition

import (
	"time"

	"github.com/google/uuid"
)

// FoodEntry is a standalone logged food item: what was eaten, with which
// macros, and when.
type FoodEntry struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	Protein  int       `json:"protein"`
	Carbs    int       `json:"carbs"`
	Fat      int       `json:"fat"`
	LoggedAt time.Time `json:"loggedAt"`
}

// MacroTotals is an additive summary of calories and macronutrients.
// The zero value is the additive identity.
type MacroTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

func (t MacroTotals) Add(other MacroTotals) MacroTotals {
	return MacroTotals{
		Calories: t.Calories + other.Calories,
		Protein:  t.Protein + other.Protein,
		Carbs:    t.Carbs + other.Carbs,
		Fat:      t.Fat + other.Fat,
	}
}

// Totals sums the macros of the given entries. Pure, no I/O.
func Totals(entries []FoodEntry) MacroTotals {
	var totals MacroTotals
	for _, e := range entries {
		totals = totals.Add(MacroTotals{
			Calories: e.Calories,
			Protein:  e.Protein,
			Carbs:    e.Carbs,
			Fat:      e.Fat,
		})
	}
	return totals
}

type foodEntryRow struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	Protein  int       `json:"protein"`
	Carbs    int       `json:"carbs"`
	Fat      int       `json:"fat"`
	LoggedAt time.Time `json:"logged_at"`
}

func (r foodEntryRow) toDomain() FoodEntry {
	return FoodEntry{
		ID:       r.ID,
		UserID:   r.UserID,
		Name:     r.Name,
		Calories: r.Calories,
		Protein:  r.Protein,
		Carbs:    r.Carbs,
		Fat:      r.Fat,
		LoggedAt: r.LoggedAt,
	}
}

// foodEntryInsertRow omits server-generated fields (id, created timestamps
// are assigned at insert time by the backend for new rows).
type foodEntryInsertRow struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	Protein  int       `json:"protein"`
	Carbs    int       `json:"carbs"`
	Fat      int       `json:"fat"`
	LoggedAt time.Time `json:"logged_at"`
}
