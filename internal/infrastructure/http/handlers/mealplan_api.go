package handlers

import (
	"net/http"

	"github.com/vothanhthong/yummyai/internal/domain/mealplan"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/infrastructure/http/middleware"
	"github.com/vothanhthong/yummyai/internal/ports/inbound"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"go.uber.org/zap"
)

// MealPlanAPIHandlers serves the weekly planner endpoints.
type MealPlanAPIHandlers struct {
	mealPlanService inbound.MealPlanService
	logger          *zap.Logger
}

// NewMealPlanAPIHandlers creates the meal plan handlers.
func NewMealPlanAPIHandlers(mealPlanService inbound.MealPlanService, logger *zap.Logger) *MealPlanAPIHandlers {
	return &MealPlanAPIHandlers{mealPlanService: mealPlanService, logger: logger}
}

// PlanSlotRequest is the PUT /mealplan payload.
type PlanSlotRequest struct {
	Date     string        `json:"date" validate:"required"`
	MealType string        `json:"meal_type" validate:"required"`
	Recipe   recipe.Recipe `json:"recipe" validate:"required"`
	Notes    string        `json:"notes" validate:"max=500"`
}

// Plan handles PUT /api/v1/mealplan.
func (h *MealPlanAPIHandlers) Plan(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req PlanSlotRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	slot, err := h.mealPlanService.Plan(r.Context(), caller, mealplan.Slot{
		Date:     req.Date,
		MealType: mealplan.MealType(req.MealType),
		Recipe:   req.Recipe,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

// Week handles GET /api/v1/mealplan?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *MealPlanAPIHandlers) Week(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, apperrors.New(apperrors.CodeValidationFailed, "from and to query parameters are required"))
		return
	}

	slots, err := h.mealPlanService.Week(r.Context(), caller, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	if slots == nil {
		slots = []mealplan.Slot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

// Unplan handles DELETE /api/v1/mealplan?date=YYYY-MM-DD&meal_type=lunch.
func (h *MealPlanAPIHandlers) Unplan(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	date := r.URL.Query().Get("date")
	mealType := r.URL.Query().Get("meal_type")
	if date == "" || mealType == "" {
		writeError(w, apperrors.New(apperrors.CodeValidationFailed, "date and meal_type query parameters are required"))
		return
	}

	if err := h.mealPlanService.Unplan(r.Context(), caller, date, mealplan.MealType(mealType)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
