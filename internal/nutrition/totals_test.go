package nutrition_test

import (
	"testing"

	"github.com/pulsefit/core/internal/nutrition"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func randomEntries(n int) []nutrition.FoodEntry {
	entries := make([]nutrition.FoodEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, nutrition.FoodEntry{
			Name:     gofakeit.Breakfast(),
			Calories: gofakeit.Number(0, 900),
			Protein:  gofakeit.Number(0, 80),
			Carbs:    gofakeit.Number(0, 120),
			Fat:      gofakeit.Number(0, 50),
		})
	}
	return entries
}

func TestTotals_Empty(t *testing.T) {
	assert.Equal(t, nutrition.MacroTotals{}, nutrition.Totals(nil))
	assert.Equal(t, nutrition.MacroTotals{}, nutrition.Totals([]nutrition.FoodEntry{}))
}

func TestTotals(t *testing.T) {
	entries := []nutrition.FoodEntry{
		{Name: "oats", Calories: 389, Protein: 17, Carbs: 66, Fat: 7},
		{Name: "eggs", Calories: 155, Protein: 13, Carbs: 1, Fat: 11},
	}
	assert.Equal(t, nutrition.MacroTotals{
		Calories: 544,
		Protein:  30,
		Carbs:    67,
		Fat:      18,
	}, nutrition.Totals(entries))
}

func TestTotals_Additivity(t *testing.T) {
	a := randomEntries(7)
	b := randomEntries(5)

	combined := nutrition.Totals(append(append([]nutrition.FoodEntry{}, a...), b...))
	separate := nutrition.Totals(a).Add(nutrition.Totals(b))
	assert.Equal(t, combined, separate)
}
