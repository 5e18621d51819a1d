package outbound

import (
	"context"

	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
)

// ChatTurn is one prior conversation turn sent to the model.
type ChatTurn struct {
	Role    chat.Role
	Content string
}

// ChatReply is the decoded model result. Recipe is nil when the model
// only chatted; when present it always satisfies the recipe invariants.
type ChatReply struct {
	Text   string
	Recipe *recipe.Recipe
}

// AIService decodes one conversation turn through the remote model.
// Decode is a total function: every failure path (missing credential,
// transport error, schema violation) yields a well-formed reply, so it
// returns no error.
type AIService interface {
	Decode(ctx context.Context, userText string, history []ChatTurn, avoid []string) ChatReply
}
