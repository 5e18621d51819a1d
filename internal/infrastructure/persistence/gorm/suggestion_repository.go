package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/suggestion"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"gorm.io/gorm"
)

// SuggestionRepository implements quick-suggestion storage using GORM.
type SuggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository creates a new suggestion repository.
func NewSuggestionRepository(db *gorm.DB) outbound.SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// List returns the caller's chips ordered by their configured position.
func (r *SuggestionRepository) List(ctx context.Context, caller identity.User) ([]suggestion.QuickSuggestion, error) {
	if caller.Anonymous() {
		return nil, nil
	}

	var models []QuickSuggestionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", caller.ID).
		Order("order_index ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	suggestions := make([]suggestion.QuickSuggestion, len(models))
	for i, m := range models {
		suggestions[i] = modelToSuggestion(m)
	}
	return suggestions, nil
}

// Create stores one chip for the caller.
func (r *SuggestionRepository) Create(ctx context.Context, caller identity.User, s suggestion.QuickSuggestion) (*suggestion.QuickSuggestion, error) {
	if caller.Anonymous() {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "sign in to customize suggestions")
	}

	model := QuickSuggestionModel{
		UserID:     caller.ID,
		Label:      s.Label,
		Prompt:     s.Prompt,
		OrderIndex: s.OrderIndex,
	}
	if result := r.db.WithContext(ctx).Create(&model); result.Error != nil {
		return nil, result.Error
	}

	created := modelToSuggestion(model)
	return &created, nil
}

// Update patches the label and/or prompt of one chip.
func (r *SuggestionRepository) Update(ctx context.Context, caller identity.User, id string, label, prompt *string) (*suggestion.QuickSuggestion, error) {
	if caller.Anonymous() {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "sign in to customize suggestions")
	}

	suggestionID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeSuggestionNotFound, "suggestion not found")
	}

	var model QuickSuggestionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", suggestionID, caller.ID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeSuggestionNotFound, "suggestion not found")
		}
		return nil, result.Error
	}

	if label != nil {
		model.Label = *label
	}
	if prompt != nil {
		model.Prompt = *prompt
	}
	if result := r.db.WithContext(ctx).Save(&model); result.Error != nil {
		return nil, result.Error
	}

	updated := modelToSuggestion(model)
	return &updated, nil
}

// Delete removes one chip.
func (r *SuggestionRepository) Delete(ctx context.Context, caller identity.User, id string) error {
	if caller.Anonymous() {
		return apperrors.New(apperrors.CodeUnauthorized, "sign in to customize suggestions")
	}

	suggestionID, err := uuid.Parse(id)
	if err != nil {
		return apperrors.New(apperrors.CodeSuggestionNotFound, "suggestion not found")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", suggestionID, caller.ID).
		Delete(&QuickSuggestionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeSuggestionNotFound, "suggestion not found")
	}
	return nil
}

func modelToSuggestion(m QuickSuggestionModel) suggestion.QuickSuggestion {
	return suggestion.QuickSuggestion{
		ID:         m.ID.String(),
		UserID:     m.UserID,
		Label:      m.Label,
		Prompt:     m.Prompt,
		OrderIndex: m.OrderIndex,
	}
}
