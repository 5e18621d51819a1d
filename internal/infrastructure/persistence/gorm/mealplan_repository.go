package gorm

import (
	"context"

	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/mealplan"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MealPlanRepository implements planner-slot storage using GORM.
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository.
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Upsert plans a recipe into a slot, replacing whatever occupied it.
func (r *MealPlanRepository) Upsert(ctx context.Context, caller identity.User, slot mealplan.Slot) (*mealplan.Slot, error) {
	if caller.Anonymous() {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "sign in to plan meals")
	}

	model := MealPlanModel{
		UserID:     caller.ID,
		Date:       slot.Date,
		MealType:   string(slot.MealType),
		RecipeData: RecipeData(slot.Recipe),
		Notes:      slot.Notes,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "meal_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"recipe_data", "notes"}),
	}).Create(&model)
	if result.Error != nil {
		return nil, result.Error
	}

	stored := modelToSlot(model)
	return &stored, nil
}

// Range returns the caller's slots with date in [from, to], ordered by
// date then meal type.
func (r *MealPlanRepository) Range(ctx context.Context, caller identity.User, from, to string) ([]mealplan.Slot, error) {
	if caller.Anonymous() {
		return nil, nil
	}

	var models []MealPlanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", caller.ID, from, to).
		Order("date ASC, meal_type ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	slots := make([]mealplan.Slot, len(models))
	for i, m := range models {
		slots[i] = modelToSlot(m)
	}
	return slots, nil
}

// Delete clears one slot.
func (r *MealPlanRepository) Delete(ctx context.Context, caller identity.User, date string, mealType mealplan.MealType) error {
	if caller.Anonymous() {
		return apperrors.New(apperrors.CodeUnauthorized, "sign in to plan meals")
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND meal_type = ?", caller.ID, date, string(mealType)).
		Delete(&MealPlanModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "meal plan slot not found")
	}
	return nil
}

func modelToSlot(m MealPlanModel) mealplan.Slot {
	return mealplan.Slot{
		ID:       m.ID.String(),
		UserID:   m.UserID,
		Date:     m.Date,
		MealType: mealplan.MealType(m.MealType),
		Recipe:   recipe.Recipe(m.RecipeData),
		Notes:    m.Notes,
	}
}
