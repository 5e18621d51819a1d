package cookbook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"go.uber.org/zap"
)

type fakeCookbookRepo struct {
	saved   map[string][]recipe.Recipe
	saveErr error
}

func newFakeCookbookRepo() *fakeCookbookRepo {
	return &fakeCookbookRepo{saved: make(map[string][]recipe.Recipe)}
}

func (r *fakeCookbookRepo) Save(ctx context.Context, caller identity.User, rec recipe.Recipe) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved[caller.ID] = append(r.saved[caller.ID], rec)
	return nil
}

func (r *fakeCookbookRepo) List(ctx context.Context, caller identity.User) ([]recipe.Recipe, error) {
	return r.saved[caller.ID], nil
}

func (r *fakeCookbookRepo) Remove(ctx context.Context, caller identity.User, recipeID string) error {
	recipes := r.saved[caller.ID]
	for i, rec := range recipes {
		if rec.ID == recipeID {
			r.saved[caller.ID] = append(recipes[:i], recipes[i+1:]...)
			return nil
		}
	}
	return apperrors.New(apperrors.CodeRecipeNotFound, "recipe not in cookbook")
}

func (r *fakeCookbookRepo) Exists(ctx context.Context, caller identity.User, recipeID, recipeName string) (bool, error) {
	for _, rec := range r.saved[caller.ID] {
		if rec.ID == recipeID || (recipeName != "" && rec.Name == recipeName) {
			return true, nil
		}
	}
	return false, nil
}

// fakeCache records cache traffic.
type fakeCache struct {
	values      map[string][]string
	invalidates int
	sets        int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]string)}
}

func (c *fakeCache) Get(ctx context.Context, userID string) ([]string, bool) {
	v, ok := c.values[userID]
	return v, ok
}

func (c *fakeCache) Set(ctx context.Context, userID string, identifiers []string) {
	c.sets++
	c.values[userID] = identifiers
}

func (c *fakeCache) Invalidate(ctx context.Context, userID string) {
	c.invalidates++
	delete(c.values, userID)
}

func caller() identity.User { return identity.User{ID: "u1"} }

func TestSaveAssignsIDWhenMissing(t *testing.T) {
	svc := NewService(newFakeCookbookRepo(), newFakeCache(), zap.NewNop())

	saved, err := svc.Save(context.Background(), caller(), recipe.Recipe{Name: "Phở bò"})

	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestSaveDuplicateByNameConflicts(t *testing.T) {
	repo := newFakeCookbookRepo()
	svc := NewService(repo, newFakeCache(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, caller(), recipe.Recipe{ID: "r1", Name: "Phở bò"})
	require.NoError(t, err)

	_, err = svc.Save(ctx, caller(), recipe.Recipe{ID: "r2", Name: "Phở bò"})
	assert.Equal(t, apperrors.CodeRecipeAlreadySaved, apperrors.CodeOf(err))
}

func TestSaveAnonymousUnauthorized(t *testing.T) {
	svc := NewService(newFakeCookbookRepo(), newFakeCache(), zap.NewNop())

	_, err := svc.Save(context.Background(), identity.User{}, recipe.Recipe{Name: "Phở bò"})
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}

func TestSaveInvalidatesCache(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(newFakeCookbookRepo(), cache, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, caller(), recipe.Recipe{ID: "r1", Name: "Phở bò"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidates)
}

func TestSavedIdentifiersUnionAndCache(t *testing.T) {
	repo := newFakeCookbookRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, caller(), recipe.Recipe{ID: "r1", Name: "Phở bò"})
	require.NoError(t, err)
	_, err = svc.Save(ctx, caller(), recipe.Recipe{ID: "r2", Name: "Bún chả"})
	require.NoError(t, err)

	ids, err := svc.SavedIdentifiers(ctx, caller())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"r1", "Phở bò", "r2", "Bún chả"}, ids)
	assert.Equal(t, 1, cache.sets)

	// Second call is served from the cache.
	again, err := svc.SavedIdentifiers(ctx, caller())
	require.NoError(t, err)
	assert.Equal(t, ids, again)
	assert.Equal(t, 1, cache.sets)
}

func TestSavedIdentifiersAnonymousEmpty(t *testing.T) {
	svc := NewService(newFakeCookbookRepo(), newFakeCache(), zap.NewNop())

	ids, err := svc.SavedIdentifiers(context.Background(), identity.User{})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemoveInvalidatesCache(t *testing.T) {
	repo := newFakeCookbookRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, caller(), recipe.Recipe{ID: "r1", Name: "Phở bò"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, caller(), "r1"))
	assert.Equal(t, 2, cache.invalidates)

	err = svc.Remove(ctx, caller(), "r1")
	assert.Equal(t, apperrors.CodeRecipeNotFound, apperrors.CodeOf(err))
}
