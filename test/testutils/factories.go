// Package testutils provides test data factories for consistent test
// data generation.
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
)

// NewUser returns a random signed-in caller.
func NewUser() identity.User {
	return identity.User{
		ID:    uuid.NewString(),
		Email: gofakeit.Email(),
	}
}

// RecipeFactory builds randomized recipes with a seeded faker.
type RecipeFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewRecipeFactory creates a recipe factory with a seeded faker.
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Recipe returns a fully populated recipe with a unique id.
func (f *RecipeFactory) Recipe() recipe.Recipe {
	f.seq++
	return recipe.Recipe{
		ID:          fmt.Sprintf("rcp_test_%d", f.seq),
		Name:        f.faker.Dinner(),
		Description: f.faker.Sentence(8),
		CookingTime: f.faker.Number(10, 90),
		Difficulty:  recipe.DifficultyMedium,
		MealType:    recipe.DefaultMealType,
		Ingredients: []recipe.Ingredient{
			{Item: f.faker.Vegetable(), Amount: "200g"},
			{Item: f.faker.Fruit(), Amount: "2 quả"},
		},
		Instructions: []string{f.faker.Sentence(6), f.faker.Sentence(6)},
		Tips:         []string{f.faker.Sentence(5)},
	}
}

// MessageFactory builds chat messages with monotonically increasing
// timestamps, so generated histories are already in order.
type MessageFactory struct {
	faker *gofakeit.Faker
	next  int64
}

// NewMessageFactory creates a message factory. Timestamps start at base
// and advance one second per message.
func NewMessageFactory(seed int64, base time.Time) *MessageFactory {
	return &MessageFactory{faker: gofakeit.New(seed), next: base.UnixMilli()}
}

// Message returns a message with the next timestamp in the sequence.
func (f *MessageFactory) Message(role chat.Role) chat.Message {
	ts := f.next
	f.next += 1000
	return chat.Message{
		ID:        fmt.Sprintf("%d", ts),
		Role:      role,
		Content:   f.faker.Sentence(10),
		Timestamp: ts,
	}
}

// Conversation returns n alternating user/assistant messages, oldest
// first.
func (f *MessageFactory) Conversation(n int) []chat.Message {
	msgs := make([]chat.Message, 0, n)
	for i := 0; i < n; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		msgs = append(msgs, f.Message(role))
	}
	return msgs
}
