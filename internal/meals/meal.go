package meals

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Meal is a user-defined meal template with its macro breakdown.
type Meal struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fat       int       `json:"fat"`
	CreatedAt time.Time `json:"createdAt"`
}

// MealLog records one consumption of a meal at a point in time.
type MealLog struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"userId"`
	MealID  uuid.UUID `json:"mealId"`
	EatenAt time.Time `json:"eatenAt"`
}

// mealRow is the wire representation of a meal. Older backend versions
// named the fat column "fats"; decoding accepts either key and prefers
// "fat", encoding always emits "fat". Getting this wrong silently
// corrupts round-trips, so both directions are custom.
type mealRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Calories  int
	Protein   int
	Carbs     int
	Fat       int
	CreatedAt time.Time
}

type mealRowWire struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fat       *int      `json:"fat,omitempty"`
	Fats      *int      `json:"fats,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *mealRow) UnmarshalJSON(data []byte) error {
	var wire mealRowWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.ID = wire.ID
	r.UserID = wire.UserID
	r.Name = wire.Name
	r.Calories = wire.Calories
	r.Protein = wire.Protein
	r.Carbs = wire.Carbs
	r.CreatedAt = wire.CreatedAt

	switch {
	case wire.Fat != nil:
		r.Fat = *wire.Fat
	case wire.Fats != nil:
		r.Fat = *wire.Fats
	default:
		r.Fat = 0
	}
	return nil
}

func (r mealRow) MarshalJSON() ([]byte, error) {
	fat := r.Fat
	return json.Marshal(mealRowWire{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Calories:  r.Calories,
		Protein:   r.Protein,
		Carbs:     r.Carbs,
		Fat:       &fat,
		CreatedAt: r.CreatedAt,
	})
}

func (r mealRow) toDomain() Meal {
	return Meal(r)
}

// mealInsertRow omits server-generated fields (id, created_at).
type mealInsertRow struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	Protein  int       `json:"protein"`
	Carbs    int       `json:"carbs"`
	Fat      int       `json:"fat"`
}

// mealLogRow tolerates the older "consumed_at" key name, preferring
// "eaten_at", and always encodes "eaten_at".
type mealLogRow struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	MealID  uuid.UUID
	EatenAt time.Time
}

type mealLogRowWire struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	MealID     uuid.UUID  `json:"meal_id"`
	EatenAt    *time.Time `json:"eaten_at,omitempty"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}

func (r *mealLogRow) UnmarshalJSON(data []byte) error {
	var wire mealLogRowWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.ID = wire.ID
	r.UserID = wire.UserID
	r.MealID = wire.MealID

	switch {
	case wire.EatenAt != nil:
		r.EatenAt = *wire.EatenAt
	case wire.ConsumedAt != nil:
		r.EatenAt = *wire.ConsumedAt
	}
	return nil
}

func (r mealLogRow) MarshalJSON() ([]byte, error) {
	eatenAt := r.EatenAt
	return json.Marshal(mealLogRowWire{
		ID:      r.ID,
		UserID:  r.UserID,
		MealID:  r.MealID,
		EatenAt: &eatenAt,
	})
}

func (r mealLogRow) toDomain() MealLog {
	return MealLog(r)
}

type mealLogInsertRow struct {
	UserID  uuid.UUID `json:"user_id"`
	MealID  uuid.UUID `json:"meal_id"`
	EatenAt time.Time `json:"eaten_at"`
}
