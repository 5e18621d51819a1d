// Package mealplan holds the weekly meal planner slot type. Week
// arithmetic lives in the client; the backend only stores slots.
package mealplan

import "github.com/vothanhthong/yummyai/internal/domain/recipe"

// MealType is one of the three planner rows.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// Valid reports whether t is a known meal type.
func (t MealType) Valid() bool {
	switch t {
	case Breakfast, Lunch, Dinner:
		return true
	}
	return false
}

// Slot is one planned meal: a recipe pinned to a date and meal type.
// Date uses the YYYY-MM-DD form; a (user, date, meal type) triple is
// unique, so planning over an occupied slot replaces it.
type Slot struct {
	ID       string        `json:"id"`
	UserID   string        `json:"user_id"`
	Date     string        `json:"date"`
	MealType MealType      `json:"meal_type"`
	Recipe   recipe.Recipe `json:"recipe_data"`
	Notes    string        `json:"notes,omitempty"`
}
