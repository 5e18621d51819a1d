// Package outbound defines the interfaces for external dependencies:
// the persistence gateway, the model endpoint, and the identifier cache.
package outbound

import (
	"context"

	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/mealplan"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/domain/suggestion"
)

// MessageRepository is the chat persistence gateway. Every operation is
// scoped to the given caller; for the anonymous caller fetches return
// no rows and Insert is a nil no-op, so chat degrades to a
// non-persisted session instead of failing.
type MessageRepository interface {
	// FetchLatest returns up to limit+1 rows newest-first. The extra
	// row is the caller's has-more probe.
	FetchLatest(ctx context.Context, caller identity.User, limit int) ([]chat.Message, error)

	// FetchBefore returns up to limit+1 rows newest-first, all strictly
	// older than the cursor timestamp (epoch millis).
	FetchBefore(ctx context.Context, caller identity.User, cursor int64, limit int) ([]chat.Message, error)

	// Insert persists one message and returns the stored row with its
	// store-assigned id. Returns (nil, nil) for anonymous callers.
	Insert(ctx context.Context, caller identity.User, msg chat.Message) (*chat.Message, error)

	// DeleteAll removes the caller's entire chat history.
	DeleteAll(ctx context.Context, caller identity.User) error
}

// CookbookRepository stores recipes the user promoted from chat.
type CookbookRepository interface {
	Save(ctx context.Context, caller identity.User, r recipe.Recipe) error
	List(ctx context.Context, caller identity.User) ([]recipe.Recipe, error)
	Remove(ctx context.Context, caller identity.User, recipeID string) error

	// Exists matches on recipe id or name, mirroring the saved-state
	// check the client renders.
	Exists(ctx context.Context, caller identity.User, recipeID, recipeName string) (bool, error)
}

// SuggestionRepository stores the user's quick-suggestion chips.
type SuggestionRepository interface {
	List(ctx context.Context, caller identity.User) ([]suggestion.QuickSuggestion, error)
	Create(ctx context.Context, caller identity.User, s suggestion.QuickSuggestion) (*suggestion.QuickSuggestion, error)
	Update(ctx context.Context, caller identity.User, id string, label, prompt *string) (*suggestion.QuickSuggestion, error)
	Delete(ctx context.Context, caller identity.User, id string) error
}

// MealPlanRepository stores weekly planner slots.
type MealPlanRepository interface {
	Upsert(ctx context.Context, caller identity.User, slot mealplan.Slot) (*mealplan.Slot, error)
	Range(ctx context.Context, caller identity.User, from, to string) ([]mealplan.Slot, error)
	Delete(ctx context.Context, caller identity.User, date string, mealType mealplan.MealType) error
}

// IdentifierCache caches the set of saved recipe identifiers per user.
// Implementations must degrade to a miss when the cache is unavailable.
type IdentifierCache interface {
	Get(ctx context.Context, userID string) ([]string, bool)
	Set(ctx context.Context, userID string, identifiers []string)
	Invalidate(ctx context.Context, userID string)
}
