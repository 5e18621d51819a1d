package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/infrastructure/http/middleware"
	"github.com/vothanhthong/yummyai/internal/ports/inbound"
	"go.uber.org/zap"
)

// CookbookAPIHandlers serves the saved-recipe endpoints.
type CookbookAPIHandlers struct {
	cookbookService inbound.CookbookService
	logger          *zap.Logger
}

// NewCookbookAPIHandlers creates the cookbook handlers.
func NewCookbookAPIHandlers(cookbookService inbound.CookbookService, logger *zap.Logger) *CookbookAPIHandlers {
	return &CookbookAPIHandlers{cookbookService: cookbookService, logger: logger}
}

// SaveRecipeRequest is the POST /cookbook payload.
type SaveRecipeRequest struct {
	Recipe recipe.Recipe `json:"recipe" validate:"required"`
}

// Save handles POST /api/v1/cookbook.
func (h *CookbookAPIHandlers) Save(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req SaveRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.cookbookService.Save(r.Context(), caller, req.Recipe)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// List handles GET /api/v1/cookbook.
func (h *CookbookAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	recipes, err := h.cookbookService.List(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Remove handles DELETE /api/v1/cookbook/{recipeID}.
func (h *CookbookAPIHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	if err := h.cookbookService.Remove(r.Context(), caller, chi.URLParam(r, "recipeID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// SavedIdentifiers handles GET /api/v1/cookbook/identifiers: the
// opaque id/name set the client uses for saved badges and avoidance.
func (h *CookbookAPIHandlers) SavedIdentifiers(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	identifiers, err := h.cookbookService.SavedIdentifiers(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	if identifiers == nil {
		identifiers = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"identifiers": identifiers})
}
