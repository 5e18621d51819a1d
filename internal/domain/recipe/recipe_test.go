package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaultsBackfillsEverything(t *testing.T) {
	var r Recipe
	r.ApplyDefaults()

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, DefaultName, r.Name)
	assert.Equal(t, DefaultCookingTime, r.CookingTime)
	assert.Equal(t, DifficultyMedium, r.Difficulty)
	assert.Equal(t, DefaultMealType, r.MealType)
	assert.NotNil(t, r.Ingredients)
	assert.NotNil(t, r.Instructions)
	assert.NotNil(t, r.Tips)
}

func TestApplyDefaultsKeepsProvidedValues(t *testing.T) {
	r := Recipe{
		ID:           "r1",
		Name:         "Cá kho tộ",
		CookingTime:  60,
		Difficulty:   DifficultyHard,
		MealType:     "Món kho",
		Ingredients:  []Ingredient{{Item: "cá", Amount: "500g"}},
		Instructions: []string{"kho"},
		Tips:         []string{"lửa nhỏ"},
	}
	r.ApplyDefaults()

	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "Cá kho tộ", r.Name)
	assert.Equal(t, 60, r.CookingTime)
	assert.Equal(t, DifficultyHard, r.Difficulty)
	assert.Equal(t, "Món kho", r.MealType)
	assert.Len(t, r.Ingredients, 1)
}

func TestApplyDefaultsNegativeCookingTime(t *testing.T) {
	r := Recipe{CookingTime: -10}
	r.ApplyDefaults()
	assert.Equal(t, DefaultCookingTime, r.CookingTime)
}
