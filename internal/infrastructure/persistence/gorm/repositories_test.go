package gorm

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/mealplan"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/domain/suggestion"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"github.com/vothanhthong/yummyai/test/testutils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func alice() identity.User { return identity.User{ID: "alice", Email: "alice@example.com"} }
func bob() identity.User   { return identity.User{ID: "bob", Email: "bob@example.com"} }

func sampleRecipe(id, name string) recipe.Recipe {
	return recipe.Recipe{
		ID:          id,
		Name:        name,
		Description: "một món ngon",
		CookingTime: 45,
		Difficulty:  recipe.DifficultyEasy,
		MealType:    recipe.DefaultMealType,
		Ingredients: []recipe.Ingredient{{Item: "cá", Amount: "500g"}},
		Instructions: []string{
			"Sơ chế nguyên liệu",
			"Kho trên lửa nhỏ",
		},
		Tips: []string{"Nêm nếm vừa ăn"},
	}
}

func insertMessages(t *testing.T, repo *ChatRepository, caller identity.User, n int, base time.Time) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		_, err := repo.Insert(ctx, caller, chat.Message{
			Role:      role,
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second).UnixMilli(),
		})
		require.NoError(t, err)
	}
}

func TestChatFetchLatestOrderAndProbe(t *testing.T) {
	repo := NewChatRepository(testDB(t)).(*ChatRepository)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	insertMessages(t, repo, alice(), 30, base)
	ctx := context.Background()

	rows, err := repo.FetchLatest(ctx, alice(), 25)
	require.NoError(t, err)

	// Probe row included, newest first.
	require.Len(t, rows, 26)
	assert.Equal(t, "message 29", rows[0].Content)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Timestamp, rows[i].Timestamp)
	}
	assert.True(t, rows[0].Persisted)
}

func TestChatFetchLatestFewerRowsThanLimit(t *testing.T) {
	repo := NewChatRepository(testDB(t)).(*ChatRepository)
	insertMessages(t, repo, alice(), 3, time.Now().Add(-time.Hour))

	rows, err := repo.FetchLatest(context.Background(), alice(), 25)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestChatFetchBeforeStrictlyOlder(t *testing.T) {
	repo := NewChatRepository(testDB(t)).(*ChatRepository)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	insertMessages(t, repo, alice(), 10, base)
	ctx := context.Background()

	cursor := base.Add(5 * time.Second).UnixMilli()
	rows, err := repo.FetchBefore(ctx, alice(), cursor, 25)
	require.NoError(t, err)

	require.Len(t, rows, 5) // messages 0..4
	for _, m := range rows {
		assert.Less(t, m.Timestamp, cursor)
	}
	assert.Equal(t, "message 4", rows[0].Content)
}

func TestChatScopedPerUser(t *testing.T) {
	repo := NewChatRepository(testDB(t)).(*ChatRepository)
	ctx := context.Background()
	factory := testutils.NewMessageFactory(7, time.Now().Add(-time.Hour))
	for _, m := range factory.Conversation(4) {
		_, err := repo.Insert(ctx, alice(), m)
		require.NoError(t, err)
	}
	for _, m := range factory.Conversation(2) {
		_, err := repo.Insert(ctx, bob(), m)
		require.NoError(t, err)
	}

	aliceRows, err := repo.FetchLatest(ctx, alice(), 25)
	require.NoError(t, err)
	assert.Len(t, aliceRows, 4)

	bobRows, err := repo.FetchLatest(ctx, bob(), 25)
	require.NoError(t, err)
	assert.Len(t, bobRows, 2)
}

func TestChatAnonymousIsNoOp(t *testing.T) {
	repo := NewChatRepository(testDB(t)).(*ChatRepository)
	ctx := context.Background()
	anon := identity.User{}

	stored, err := repo.Insert(ctx, anon, chat.Message{Content: "hi", Timestamp: time.Now().UnixMilli()})
	require.NoError(t, err)
	assert.Nil(t, stored)

	rows, err := repo.FetchLatest(ctx, anon, 25)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.NoError(t, repo.DeleteAll(ctx, anon))
}

func TestChatInsertKeepsTimestampAndRecipe(t *testing.T) {
	repo := NewChatRepository(testDB(t)).(*ChatRepository)
	ctx := context.Background()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	r := sampleRecipe("r1", "Cá kho tộ")

	stored, err := repo.Insert(ctx, alice(), chat.Message{
		Role:      chat.RoleAssistant,
		Content:   "Gợi ý nè!",
		Recipe:    &r,
		Timestamp: ts,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, ts, stored.Timestamp)
	assert.True(t, stored.Persisted)

	rows, err := repo.FetchLatest(ctx, alice(), 25)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Recipe)
	assert.Equal(t, "Cá kho tộ", rows[0].Recipe.Name)
	assert.Equal(t, r.Ingredients, rows[0].Recipe.Ingredients)
	assert.Equal(t, ts, rows[0].Timestamp)
}

func TestChatDeleteAll(t *testing.T) {
	repo := NewChatRepository(testDB(t)).(*ChatRepository)
	ctx := context.Background()
	insertMessages(t, repo, alice(), 5, time.Now().Add(-time.Hour))
	insertMessages(t, repo, bob(), 3, time.Now().Add(-time.Hour))

	require.NoError(t, repo.DeleteAll(ctx, alice()))

	aliceRows, err := repo.FetchLatest(ctx, alice(), 25)
	require.NoError(t, err)
	assert.Empty(t, aliceRows)

	bobRows, err := repo.FetchLatest(ctx, bob(), 25)
	require.NoError(t, err)
	assert.Len(t, bobRows, 3)
}

func TestCookbookSaveAndList(t *testing.T) {
	repo := NewCookbookRepository(testDB(t)).(*CookbookRepository)
	ctx := context.Background()
	factory := testutils.NewRecipeFactory(42)
	owner := testutils.NewUser()

	require.NoError(t, repo.Save(ctx, owner, factory.Recipe()))
	require.NoError(t, repo.Save(ctx, owner, factory.Recipe()))

	recipes, err := repo.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	others, err := repo.List(ctx, testutils.NewUser())
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestCookbookDuplicateSaveConflicts(t *testing.T) {
	repo := NewCookbookRepository(testDB(t)).(*CookbookRepository)
	ctx := context.Background()
	r := sampleRecipe("r1", "Cá kho tộ")

	require.NoError(t, repo.Save(ctx, alice(), r))
	err := repo.Save(ctx, alice(), r)
	assert.Equal(t, apperrors.CodeRecipeAlreadySaved, apperrors.CodeOf(err))

	// Another user can still save the same recipe.
	assert.NoError(t, repo.Save(ctx, bob(), r))
}

func TestCookbookRemove(t *testing.T) {
	repo := NewCookbookRepository(testDB(t)).(*CookbookRepository)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, alice(), sampleRecipe("r1", "Cá kho tộ")))

	require.NoError(t, repo.Remove(ctx, alice(), "r1"))

	err := repo.Remove(ctx, alice(), "r1")
	assert.Equal(t, apperrors.CodeRecipeNotFound, apperrors.CodeOf(err))
}

func TestCookbookExistsMatchesIDOrName(t *testing.T) {
	repo := NewCookbookRepository(testDB(t)).(*CookbookRepository)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, alice(), sampleRecipe("r1", "Cá kho tộ")))

	byID, err := repo.Exists(ctx, alice(), "r1", "")
	require.NoError(t, err)
	assert.True(t, byID)

	byName, err := repo.Exists(ctx, alice(), "other", "Cá kho tộ")
	require.NoError(t, err)
	assert.True(t, byName)

	neither, err := repo.Exists(ctx, alice(), "other", "Bún chả")
	require.NoError(t, err)
	assert.False(t, neither)

	otherUser, err := repo.Exists(ctx, bob(), "r1", "Cá kho tộ")
	require.NoError(t, err)
	assert.False(t, otherUser)
}

func TestSuggestionCRUD(t *testing.T) {
	repo := NewSuggestionRepository(testDB(t)).(*SuggestionRepository)
	ctx := context.Background()

	created, err := repo.Create(ctx, alice(), suggestion.QuickSuggestion{
		Label:      "🍲 Lẩu",
		Prompt:     "Gợi ý món lẩu cho cuối tuần",
		OrderIndex: 0,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	newLabel := "🍜 Bún"
	updated, err := repo.Update(ctx, alice(), created.ID, &newLabel, nil)
	require.NoError(t, err)
	assert.Equal(t, "🍜 Bún", updated.Label)
	assert.Equal(t, created.Prompt, updated.Prompt)

	listed, err := repo.List(ctx, alice())
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, repo.Delete(ctx, alice(), created.ID))
	err = repo.Delete(ctx, alice(), created.ID)
	assert.Equal(t, apperrors.CodeSuggestionNotFound, apperrors.CodeOf(err))
}

func TestSuggestionListOrdersByIndex(t *testing.T) {
	repo := NewSuggestionRepository(testDB(t)).(*SuggestionRepository)
	ctx := context.Background()

	for i, def := range suggestion.Defaults {
		def.OrderIndex = i
		_, err := repo.Create(ctx, alice(), def)
		require.NoError(t, err)
	}

	listed, err := repo.List(ctx, alice())
	require.NoError(t, err)
	require.Len(t, listed, len(suggestion.Defaults))
	for i, s := range listed {
		assert.Equal(t, suggestion.Defaults[i].Label, s.Label)
		assert.Equal(t, i, s.OrderIndex)
	}
}

func TestSuggestionUpdateOtherUserNotFound(t *testing.T) {
	repo := NewSuggestionRepository(testDB(t)).(*SuggestionRepository)
	ctx := context.Background()

	created, err := repo.Create(ctx, alice(), suggestion.QuickSuggestion{Label: "a", Prompt: "b"})
	require.NoError(t, err)

	label := "x"
	_, err = repo.Update(ctx, bob(), created.ID, &label, nil)
	assert.Equal(t, apperrors.CodeSuggestionNotFound, apperrors.CodeOf(err))
}

func TestMealPlanUpsertReplacesSlot(t *testing.T) {
	repo := NewMealPlanRepository(testDB(t)).(*MealPlanRepository)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, alice(), mealplan.Slot{
		Date:     "2026-03-02",
		MealType: mealplan.Lunch,
		Recipe:   sampleRecipe("r1", "Cá kho tộ"),
	})
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = repo.Upsert(ctx, alice(), mealplan.Slot{
		Date:     "2026-03-02",
		MealType: mealplan.Lunch,
		Recipe:   sampleRecipe("r2", "Phở bò"),
		Notes:    "đổi món",
	})
	require.NoError(t, err)

	slots, err := repo.Range(ctx, alice(), "2026-03-02", "2026-03-02")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Phở bò", slots[0].Recipe.Name)
	assert.Equal(t, "đổi món", slots[0].Notes)
}

func TestMealPlanRangeInclusiveAndScoped(t *testing.T) {
	repo := NewMealPlanRepository(testDB(t)).(*MealPlanRepository)
	ctx := context.Background()

	for _, date := range []string{"2026-03-01", "2026-03-03", "2026-03-08"} {
		_, err := repo.Upsert(ctx, alice(), mealplan.Slot{
			Date:     date,
			MealType: mealplan.Dinner,
			Recipe:   sampleRecipe("r-"+date, "Món "+date),
		})
		require.NoError(t, err)
	}
	_, err := repo.Upsert(ctx, bob(), mealplan.Slot{
		Date:     "2026-03-03",
		MealType: mealplan.Dinner,
		Recipe:   sampleRecipe("rb", "Món của bob"),
	})
	require.NoError(t, err)

	slots, err := repo.Range(ctx, alice(), "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "2026-03-01", slots[0].Date)
	assert.Equal(t, "2026-03-03", slots[1].Date)
}

func TestMealPlanDelete(t *testing.T) {
	repo := NewMealPlanRepository(testDB(t)).(*MealPlanRepository)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, alice(), mealplan.Slot{
		Date:     "2026-03-02",
		MealType: mealplan.Breakfast,
		Recipe:   sampleRecipe("r1", "Bánh mì"),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, alice(), "2026-03-02", mealplan.Breakfast))

	err = repo.Delete(ctx, alice(), "2026-03-02", mealplan.Breakfast)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}
