package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"gorm.io/gorm"
)

// CookbookRepository implements saved-recipe storage using GORM.
type CookbookRepository struct {
	db *gorm.DB
}

// NewCookbookRepository creates a new cookbook repository.
func NewCookbookRepository(db *gorm.DB) outbound.CookbookRepository {
	return &CookbookRepository{db: db}
}

// Save stores one recipe for the caller.
func (r *CookbookRepository) Save(ctx context.Context, caller identity.User, rec recipe.Recipe) error {
	if caller.Anonymous() {
		return apperrors.New(apperrors.CodeUnauthorized, "sign in to save recipes")
	}

	model := CookbookEntryModel{
		UserID:     caller.ID,
		RecipeID:   rec.ID,
		RecipeName: rec.Name,
		RecipeData: RecipeData(rec),
		SavedAt:    time.Now(),
	}
	if result := r.db.WithContext(ctx).Create(&model); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.CodeRecipeAlreadySaved, "recipe already saved")
		}
		return result.Error
	}
	return nil
}

// List returns the caller's saved recipes, newest-saved first.
func (r *CookbookRepository) List(ctx context.Context, caller identity.User) ([]recipe.Recipe, error) {
	if caller.Anonymous() {
		return nil, nil
	}

	var models []CookbookEntryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", caller.ID).
		Order("saved_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]recipe.Recipe, len(models))
	for i, m := range models {
		recipes[i] = recipe.Recipe(m.RecipeData)
	}
	return recipes, nil
}

// Remove deletes one saved recipe by its recipe id.
func (r *CookbookRepository) Remove(ctx context.Context, caller identity.User, recipeID string) error {
	if caller.Anonymous() {
		return apperrors.New(apperrors.CodeUnauthorized, "sign in to manage recipes")
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", caller.ID, recipeID).
		Delete(&CookbookEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeRecipeNotFound, "recipe not in cookbook")
	}
	return nil
}

// Exists matches on recipe id or name, the same check the client uses
// to badge a suggestion as already saved.
func (r *CookbookRepository) Exists(ctx context.Context, caller identity.User, recipeID, recipeName string) (bool, error) {
	if caller.Anonymous() {
		return false, nil
	}

	var count int64
	result := r.db.WithContext(ctx).
		Model(&CookbookEntryModel{}).
		Where("user_id = ? AND (recipe_id = ? OR recipe_name = ?)", caller.ID, recipeID, recipeName).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
