// Package recipe contains the core domain types for suggested and saved recipes.
package recipe

import (
	"fmt"
	"time"
)

// Difficulty levels as they appear in the product (Vietnamese labels).
const (
	DifficultyEasy   = "Dễ"
	DifficultyMedium = "Trung bình"
	DifficultyHard   = "Khó"
)

// Defaults applied when the model returns a partial recipe.
const (
	DefaultName        = "Món ăn"
	DefaultCookingTime = 30
	DefaultMealType    = "Món chính"
)

// Ingredient is a single item/amount pair.
type Ingredient struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
}

// Recipe represents a suggested dish or a full family meal set
// ("mâm cơm"). It round-trips as JSON through the recipe_data column
// and through the model response, so every field carries a JSON tag.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	CookingTime  int          `json:"cooking_time"`
	Difficulty   string       `json:"difficulty"`
	MealType     string       `json:"meal_type"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Tips         []string     `json:"tips"`
	ImageURL     string       `json:"image_url,omitempty"`
}

// NewID generates a locally assigned recipe identifier. Promotion into
// the cookbook keeps this id when the model never assigned one.
func NewID() string {
	return fmt.Sprintf("rcp_%d", time.Now().UnixMilli())
}

// ApplyDefaults backfills every required field the upstream model may
// have omitted. After this call a Recipe always satisfies the data
// model's required-field invariant.
func (r *Recipe) ApplyDefaults() {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.Name == "" {
		r.Name = DefaultName
	}
	if r.CookingTime <= 0 {
		r.CookingTime = DefaultCookingTime
	}
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	if r.MealType == "" {
		r.MealType = DefaultMealType
	}
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.Tips == nil {
		r.Tips = []string{}
	}
}
