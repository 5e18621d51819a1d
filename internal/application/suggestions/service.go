// Package suggestions manages the user's quick-suggestion chips,
// seeding the default set on first use.
package suggestions

import (
	"context"
	"strings"

	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/suggestion"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the inbound SuggestionService.
type Service struct {
	repo   outbound.SuggestionRepository
	logger *zap.Logger
}

// NewService creates the suggestion service.
func NewService(repo outbound.SuggestionRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the caller's chips. A signed-in user with no chips gets
// the default set created for them first.
func (s *Service) List(ctx context.Context, caller identity.User) ([]suggestion.QuickSuggestion, error) {
	existing, err := s.repo.List(ctx, caller)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 || caller.Anonymous() {
		return existing, nil
	}

	seeded := make([]suggestion.QuickSuggestion, 0, len(suggestion.Defaults))
	for i, def := range suggestion.Defaults {
		def.OrderIndex = i
		created, err := s.repo.Create(ctx, caller, def)
		if err != nil {
			s.logger.Error("failed to seed default suggestion",
				zap.String("user_id", caller.ID),
				zap.String("label", def.Label),
				zap.Error(err),
			)
			continue
		}
		seeded = append(seeded, *created)
	}
	return seeded, nil
}

// Create appends a new chip after the caller's existing ones.
func (s *Service) Create(ctx context.Context, caller identity.User, label, prompt string) (*suggestion.QuickSuggestion, error) {
	label = strings.TrimSpace(label)
	prompt = strings.TrimSpace(prompt)
	if label == "" || prompt == "" {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "label and prompt are required")
	}

	existing, err := s.repo.List(ctx, caller)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, caller, suggestion.QuickSuggestion{
		Label:      label,
		Prompt:     prompt,
		OrderIndex: len(existing),
	})
}

// Update patches a chip's label and/or prompt.
func (s *Service) Update(ctx context.Context, caller identity.User, id string, label, prompt *string) (*suggestion.QuickSuggestion, error) {
	if label == nil && prompt == nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "nothing to update")
	}
	return s.repo.Update(ctx, caller, id, label, prompt)
}

// Delete removes a chip.
func (s *Service) Delete(ctx context.Context, caller identity.User, id string) error {
	return s.repo.Delete(ctx, caller, id)
}
