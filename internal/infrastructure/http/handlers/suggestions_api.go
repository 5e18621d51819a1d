package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vothanhthong/yummyai/internal/domain/suggestion"
	"github.com/vothanhthong/yummyai/internal/infrastructure/http/middleware"
	"github.com/vothanhthong/yummyai/internal/ports/inbound"
	"go.uber.org/zap"
)

// SuggestionAPIHandlers serves the quick-suggestion chip endpoints.
type SuggestionAPIHandlers struct {
	suggestionService inbound.SuggestionService
	logger            *zap.Logger
}

// NewSuggestionAPIHandlers creates the suggestion handlers.
func NewSuggestionAPIHandlers(suggestionService inbound.SuggestionService, logger *zap.Logger) *SuggestionAPIHandlers {
	return &SuggestionAPIHandlers{suggestionService: suggestionService, logger: logger}
}

// CreateSuggestionRequest is the POST /suggestions payload.
type CreateSuggestionRequest struct {
	Label  string `json:"label" validate:"required,max=100"`
	Prompt string `json:"prompt" validate:"required,max=500"`
}

// UpdateSuggestionRequest is the PATCH /suggestions/{suggestionID}
// payload. Omitted fields are left untouched.
type UpdateSuggestionRequest struct {
	Label  *string `json:"label" validate:"omitempty,max=100"`
	Prompt *string `json:"prompt" validate:"omitempty,max=500"`
}

// List handles GET /api/v1/suggestions.
func (h *SuggestionAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	chips, err := h.suggestionService.List(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	if chips == nil {
		chips = []suggestion.QuickSuggestion{}
	}
	writeJSON(w, http.StatusOK, chips)
}

// Create handles POST /api/v1/suggestions.
func (h *SuggestionAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req CreateSuggestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.suggestionService.Create(r.Context(), caller, req.Label, req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PATCH /api/v1/suggestions/{suggestionID}.
func (h *SuggestionAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req UpdateSuggestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.suggestionService.Update(r.Context(), caller, chi.URLParam(r, "suggestionID"), req.Label, req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/suggestions/{suggestionID}.
func (h *SuggestionAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	if err := h.suggestionService.Delete(r.Context(), caller, chi.URLParam(r, "suggestionID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
