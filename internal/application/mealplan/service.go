// Package mealplan plans recipes into dated breakfast/lunch/dinner
// slots. Planning over an occupied slot replaces it.
package mealplan

import (
	"context"
	"time"

	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/mealplan"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Service implements the inbound MealPlanService.
type Service struct {
	repo   outbound.MealPlanRepository
	logger *zap.Logger
}

// NewService creates the meal plan service.
func NewService(repo outbound.MealPlanRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Plan pins a recipe to a date and meal type, replacing whatever was
// there before.
func (s *Service) Plan(ctx context.Context, caller identity.User, slot mealplan.Slot) (*mealplan.Slot, error) {
	if _, err := time.Parse(dateLayout, slot.Date); err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "date must use the YYYY-MM-DD form")
	}
	if !slot.MealType.Valid() {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "meal type must be breakfast, lunch or dinner")
	}
	if slot.Recipe.Name == "" {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "a recipe is required")
	}
	return s.repo.Upsert(ctx, caller, slot)
}

// Week returns the caller's slots between from and to inclusive.
func (s *Service) Week(ctx context.Context, caller identity.User, from, to string) ([]mealplan.Slot, error) {
	if _, err := time.Parse(dateLayout, from); err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "from must use the YYYY-MM-DD form")
	}
	if _, err := time.Parse(dateLayout, to); err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "to must use the YYYY-MM-DD form")
	}
	return s.repo.Range(ctx, caller, from, to)
}

// Unplan clears one slot.
func (s *Service) Unplan(ctx context.Context, caller identity.User, date string, mealType mealplan.MealType) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return apperrors.New(apperrors.CodeValidationFailed, "date must use the YYYY-MM-DD form")
	}
	if !mealType.Valid() {
		return apperrors.New(apperrors.CodeValidationFailed, "meal type must be breakfast, lunch or dinner")
	}
	return s.repo.Delete(ctx, caller, date, mealType)
}
