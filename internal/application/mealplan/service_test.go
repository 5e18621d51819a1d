package mealplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/mealplan"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"go.uber.org/zap"
)

type fakeMealPlanRepo struct {
	slots map[string]mealplan.Slot // keyed by date|mealType
}

func newFakeMealPlanRepo() *fakeMealPlanRepo {
	return &fakeMealPlanRepo{slots: make(map[string]mealplan.Slot)}
}

func (r *fakeMealPlanRepo) key(date string, mt mealplan.MealType) string {
	return date + "|" + string(mt)
}

func (r *fakeMealPlanRepo) Upsert(ctx context.Context, caller identity.User, slot mealplan.Slot) (*mealplan.Slot, error) {
	r.slots[r.key(slot.Date, slot.MealType)] = slot
	return &slot, nil
}

func (r *fakeMealPlanRepo) Range(ctx context.Context, caller identity.User, from, to string) ([]mealplan.Slot, error) {
	var out []mealplan.Slot
	for _, s := range r.slots {
		if s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeMealPlanRepo) Delete(ctx context.Context, caller identity.User, date string, mealType mealplan.MealType) error {
	delete(r.slots, r.key(date, mealType))
	return nil
}

func caller() identity.User { return identity.User{ID: "u1"} }

func TestPlanValidSlot(t *testing.T) {
	svc := NewService(newFakeMealPlanRepo(), zap.NewNop())

	slot, err := svc.Plan(context.Background(), caller(), mealplan.Slot{
		Date:     "2026-03-02",
		MealType: mealplan.Lunch,
		Recipe:   recipe.Recipe{ID: "r1", Name: "Phở bò"},
	})

	require.NoError(t, err)
	assert.Equal(t, mealplan.Lunch, slot.MealType)
}

func TestPlanRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeMealPlanRepo(), zap.NewNop())
	ctx := context.Background()
	valid := recipe.Recipe{ID: "r1", Name: "Phở bò"}

	tests := []struct {
		name string
		slot mealplan.Slot
	}{
		{"bad date", mealplan.Slot{Date: "02/03/2026", MealType: mealplan.Lunch, Recipe: valid}},
		{"bad meal type", mealplan.Slot{Date: "2026-03-02", MealType: "brunch", Recipe: valid}},
		{"missing recipe", mealplan.Slot{Date: "2026-03-02", MealType: mealplan.Lunch}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Plan(ctx, caller(), tt.slot)
			assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))
		})
	}
}

func TestWeekValidatesBounds(t *testing.T) {
	svc := NewService(newFakeMealPlanRepo(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Week(ctx, caller(), "bad", "2026-03-08")
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))

	_, err = svc.Week(ctx, caller(), "2026-03-02", "2026-03-08")
	assert.NoError(t, err)
}

func TestUnplanValidates(t *testing.T) {
	svc := NewService(newFakeMealPlanRepo(), zap.NewNop())
	ctx := context.Background()

	err := svc.Unplan(ctx, caller(), "2026-03-02", "snack")
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))

	assert.NoError(t, svc.Unplan(ctx, caller(), "2026-03-02", mealplan.Dinner))
}
