package gorm

import (
	"context"
	"time"

	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	"gorm.io/gorm"
)

// ChatRepository implements the chat persistence gateway using GORM.
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat message repository.
func NewChatRepository(db *gorm.DB) outbound.MessageRepository {
	return &ChatRepository{db: db}
}

// FetchLatest returns up to limit+1 of the caller's newest rows,
// newest-first. The extra row lets the engine decide hasMore.
func (r *ChatRepository) FetchLatest(ctx context.Context, caller identity.User, limit int) ([]chat.Message, error) {
	if caller.Anonymous() {
		return nil, nil
	}

	var models []ChatMessageModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", caller.ID).
		Order("created_at DESC").
		Limit(limit + 1).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return modelsToMessages(models), nil
}

// FetchBefore returns up to limit+1 rows strictly older than the
// cursor timestamp, newest-first.
func (r *ChatRepository) FetchBefore(ctx context.Context, caller identity.User, cursor int64, limit int) ([]chat.Message, error) {
	if caller.Anonymous() {
		return nil, nil
	}

	var models []ChatMessageModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at < ?", caller.ID, time.UnixMilli(cursor)).
		Order("created_at DESC").
		Limit(limit + 1).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return modelsToMessages(models), nil
}

// Insert persists one message for the caller, keeping the message's
// own timestamp so replayed history preserves session order. For the
// anonymous caller this is a nil no-op: chat is not persisted without
// a session.
func (r *ChatRepository) Insert(ctx context.Context, caller identity.User, msg chat.Message) (*chat.Message, error) {
	if caller.Anonymous() {
		return nil, nil
	}

	model := ChatMessageModel{
		UserID:    caller.ID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: time.UnixMilli(msg.Timestamp),
	}
	if msg.Recipe != nil {
		data := RecipeData(*msg.Recipe)
		model.RecipeData = &data
	}

	if result := r.db.WithContext(ctx).Create(&model); result.Error != nil {
		return nil, result.Error
	}

	stored := modelToMessage(model)
	return &stored, nil
}

// DeleteAll removes the caller's entire history.
func (r *ChatRepository) DeleteAll(ctx context.Context, caller identity.User) error {
	if caller.Anonymous() {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ?", caller.ID).
		Delete(&ChatMessageModel{}).Error
}

func modelToMessage(m ChatMessageModel) chat.Message {
	msg := chat.Message{
		ID:        m.ID.String(),
		Role:      chat.Role(m.Role),
		Content:   m.Content,
		Timestamp: m.CreatedAt.UnixMilli(),
		Persisted: true,
	}
	if m.RecipeData != nil {
		r := recipe.Recipe(*m.RecipeData)
		msg.Recipe = &r
	}
	return msg
}

func modelsToMessages(models []ChatMessageModel) []chat.Message {
	messages := make([]chat.Message, len(models))
	for i, m := range models {
		messages[i] = modelToMessage(m)
	}
	return messages
}
