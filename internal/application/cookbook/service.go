// Package cookbook manages the user's saved recipes, with a cached
// identifier set for fast "already saved" checks.
package cookbook

import (
	"context"

	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the inbound CookbookService.
type Service struct {
	repo   outbound.CookbookRepository
	cache  outbound.IdentifierCache
	logger *zap.Logger
}

// NewService creates the cookbook service.
func NewService(repo outbound.CookbookRepository, cache outbound.IdentifierCache, logger *zap.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Save promotes a suggested recipe into the cookbook. A recipe already
// saved under the same id or name is a conflict, surfaced to the UI as
// a transient notice. Promotion assigns a durable id when the model
// never set one.
func (s *Service) Save(ctx context.Context, caller identity.User, r recipe.Recipe) (recipe.Recipe, error) {
	if caller.Anonymous() {
		return r, apperrors.New(apperrors.CodeUnauthorized, "sign in to save recipes")
	}

	if r.ID == "" {
		r.ID = recipe.NewID()
	}

	exists, err := s.repo.Exists(ctx, caller, r.ID, r.Name)
	if err != nil {
		return r, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to check cookbook")
	}
	if exists {
		return r, apperrors.New(apperrors.CodeRecipeAlreadySaved, "recipe already saved")
	}

	if err := s.repo.Save(ctx, caller, r); err != nil {
		return r, err
	}

	s.cache.Invalidate(ctx, caller.ID)
	return r, nil
}

// List returns the caller's saved recipes, newest first.
func (s *Service) List(ctx context.Context, caller identity.User) ([]recipe.Recipe, error) {
	return s.repo.List(ctx, caller)
}

// Remove deletes a saved recipe.
func (s *Service) Remove(ctx context.Context, caller identity.User, recipeID string) error {
	if err := s.repo.Remove(ctx, caller, recipeID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, caller.ID)
	return nil
}

// SavedIdentifiers returns the union of saved recipe ids and names,
// cache-first. The presentation layer treats it as an opaque set.
func (s *Service) SavedIdentifiers(ctx context.Context, caller identity.User) ([]string, error) {
	if caller.Anonymous() {
		return nil, nil
	}

	if cached, ok := s.cache.Get(ctx, caller.ID); ok {
		return cached, nil
	}

	recipes, err := s.repo.List(ctx, caller)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(recipes)*2)
	identifiers := make([]string, 0, len(recipes)*2)
	for _, r := range recipes {
		for _, id := range []string{r.ID, r.Name} {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			identifiers = append(identifiers, id)
		}
	}

	s.cache.Set(ctx, caller.ID, identifiers)
	return identifiers, nil
}
