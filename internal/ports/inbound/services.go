// Package inbound defines the service interfaces consumed by the
// presentation layer (HTTP handlers).
package inbound

import (
	"context"

	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/mealplan"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/domain/suggestion"
)

// ChatService is the chat session engine as seen by the UI: the
// ordered message list, pagination flags, and the three operations.
// History, LoadOlder and Send are fail-soft: they degrade to a usable
// view instead of propagating store or model failures. Send returns an
// error only for the rejection cases (blank text, send in flight).
type ChatService interface {
	History(ctx context.Context, caller identity.User) chat.View
	LoadOlder(ctx context.Context, caller identity.User) chat.View
	Send(ctx context.Context, caller identity.User, text string) (chat.View, error)
	Clear(ctx context.Context, caller identity.User) error
}

// CookbookService manages the user's saved recipes.
type CookbookService interface {
	Save(ctx context.Context, caller identity.User, r recipe.Recipe) (recipe.Recipe, error)
	List(ctx context.Context, caller identity.User) ([]recipe.Recipe, error)
	Remove(ctx context.Context, caller identity.User, recipeID string) error
	SavedIdentifiers(ctx context.Context, caller identity.User) ([]string, error)
}

// SuggestionService manages quick-suggestion chips, seeding the
// defaults on first use.
type SuggestionService interface {
	List(ctx context.Context, caller identity.User) ([]suggestion.QuickSuggestion, error)
	Create(ctx context.Context, caller identity.User, label, prompt string) (*suggestion.QuickSuggestion, error)
	Update(ctx context.Context, caller identity.User, id string, label, prompt *string) (*suggestion.QuickSuggestion, error)
	Delete(ctx context.Context, caller identity.User, id string) error
}

// MealPlanService plans recipes into dated meal slots.
type MealPlanService interface {
	Plan(ctx context.Context, caller identity.User, slot mealplan.Slot) (*mealplan.Slot, error)
	Week(ctx context.Context, caller identity.User, from, to string) ([]mealplan.Slot, error)
	Unplan(ctx context.Context, caller identity.User, date string, mealType mealplan.MealType) error
}
