// Package chat contains the domain types for the chat session: messages,
// pages of history, and the session view exposed to the presentation layer.
package chat

import (
	"strconv"
	"time"

	"github.com/vothanhthong/yummyai/internal/domain/recipe"
)

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PageSize is the fixed number of messages per history page.
const PageSize = 25

// WelcomeText seeds a fresh session when the store has no history for
// the caller (or history could not be loaded).
const WelcomeText = `Chào bạn! Hôm nay bạn muốn nấu gì nào? Hoặc cứ hỏi "Hôm nay ăn gì" để mình gợi ý nhé! 🍲`

// WelcomeID is the fixed id of the synthetic welcome message.
const WelcomeID = "1"

// FallbackText is the assistant reply used whenever the model call
// fails. The session never surfaces a hard failure to its caller.
const FallbackText = "Xin lỗi, mình gặp chút trục trặc khi suy nghĩ. Bạn thử lại nhé!"

// Message is a single immutable turn in the conversation. Persisted
// reports whether the row has been durably saved; locally appended
// turns start out unpersisted and are synced best-effort.
type Message struct {
	ID        string         `json:"id"`
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	Recipe    *recipe.Recipe `json:"recipe,omitempty"`
	Timestamp int64          `json:"timestamp"`
	Persisted bool           `json:"-"`
}

// NewLocalMessage creates a client-originated message stamped with the
// current epoch millis and a locally generated id.
func NewLocalMessage(role Role, content string, r *recipe.Recipe) Message {
	now := time.Now().UnixMilli()
	id := now
	if role == RoleAssistant {
		// Keeps user/assistant ids of the same turn distinct.
		id = now + 1
	}
	return Message{
		ID:        strconv.FormatInt(id, 10),
		Role:      role,
		Content:   content,
		Recipe:    r,
		Timestamp: now,
	}
}

// Welcome returns the synthetic greeting used for empty sessions.
func Welcome() Message {
	return Message{
		ID:        WelcomeID,
		Role:      RoleAssistant,
		Content:   WelcomeText,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Page is one unit of paginated history, ordered oldest to newest.
// OldestTimestamp is zero when Messages is empty; otherwise it equals
// the timestamp of the first element. HasMore is true iff the store
// holds at least one message strictly older than OldestTimestamp.
type Page struct {
	Messages        []Message `json:"messages"`
	HasMore         bool      `json:"has_more"`
	OldestTimestamp int64     `json:"oldest_timestamp"`
}

// View is the session state handed to the presentation layer: the full
// ordered message list plus the flags it needs to render scrolling.
type View struct {
	Messages        []Message `json:"messages"`
	HasMore         bool      `json:"has_more"`
	IsLoadingOlder  bool      `json:"is_loading_older"`
	IsSending       bool      `json:"is_sending"`
	OldestTimestamp int64     `json:"oldest_timestamp"`
}
