// Package chat implements the chat session engine: the ordered message
// list, the pagination cursor, optimistic append of new turns, and
// best-effort persistence synchronization.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
	"go.uber.org/zap"
)

// historyWindow is how many trailing messages accompany each model call.
const historyWindow = 6

// Rejection sentinels for Send. These are the only errors the session
// ever returns; store and model failures degrade internally.
var (
	ErrEmptyMessage = apperrors.New(apperrors.CodeMessageRejected, "message is empty")
	ErrSendInFlight = apperrors.New(apperrors.CodeMessageRejected, "a send is already in flight")
)

// Session owns one user's runtime chat state: the concatenation of all
// loaded pages in ascending timestamp order plus newly sent turns.
// LoadOlder and Send each guard against their own re-entrancy but not
// against each other; they touch disjoint ends of the list.
type Session struct {
	mu sync.Mutex

	caller   identity.User
	messages []chat.Message
	hasMore  bool
	oldest   int64 // pagination cursor, 0 when unknown

	loadingOlder bool
	sending      bool
	loadOnce     sync.Once

	pageSize int
	repo     outbound.MessageRepository
	ai       outbound.AIService
	logger   *zap.Logger

	persistWG sync.WaitGroup
}

// NewSession creates an unloaded session for the caller.
func NewSession(caller identity.User, repo outbound.MessageRepository, ai outbound.AIService, logger *zap.Logger) *Session {
	return &Session{
		caller:   caller,
		pageSize: chat.PageSize,
		repo:     repo,
		ai:       ai,
		logger:   logger,
	}
}

// LoadInitial fetches the newest page of history. An empty store, an
// anonymous caller, or any retrieval error all seed the session with
// the synthetic welcome message: the UI is never blocked on history.
// The load runs once per session; concurrent callers block until it
// completes, so every view observes an initialized message list.
func (s *Session) LoadInitial(ctx context.Context) {
	s.loadOnce.Do(func() { s.loadInitial(ctx) })
}

func (s *Session) loadInitial(ctx context.Context) {
	rows, err := s.repo.FetchLatest(ctx, s.caller, s.pageSize)
	if err != nil {
		s.logger.Error("failed to load chat history, seeding welcome message",
			zap.String("user_id", s.caller.ID),
			zap.Error(err),
		)
		rows = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rows) == 0 {
		welcome := chat.Welcome()
		s.messages = []chat.Message{welcome}
		s.hasMore = false
		s.oldest = 0
		// The seeded welcome is a locally appended turn like any
		// other: it becomes durable history for a signed-in caller.
		if !s.caller.Anonymous() {
			s.persistAsync(welcome)
		}
		return
	}

	page := pageFromRows(rows, s.pageSize)
	s.messages = page.Messages
	s.hasMore = page.HasMore
	s.oldest = page.OldestTimestamp
}

// LoadOlder prepends the next page of strictly older history. It is a
// no-op while another backfill is in flight, when the store is
// exhausted, or before a cursor exists. Errors leave the session
// unchanged.
func (s *Session) LoadOlder(ctx context.Context) {
	s.mu.Lock()
	if s.loadingOlder || !s.hasMore || s.oldest == 0 {
		s.mu.Unlock()
		return
	}
	s.loadingOlder = true
	cursor := s.oldest
	s.mu.Unlock()

	rows, err := s.repo.FetchBefore(ctx, s.caller, cursor, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingOlder = false

	if err != nil {
		s.logger.Error("failed to load older messages",
			zap.String("user_id", s.caller.ID),
			zap.Int64("cursor", cursor),
			zap.Error(err),
		)
		return
	}

	if len(rows) == 0 {
		s.hasMore = false
		return
	}

	page := pageFromRows(rows, s.pageSize)
	s.messages = append(page.Messages, s.messages...)
	s.hasMore = page.HasMore
	s.oldest = page.OldestTimestamp
}

// Send appends the user's turn, asks the model for a reply, and
// appends the assistant's turn. Blank text and overlapping sends are
// rejected; everything else succeeds, degrading to the fixed apology
// when the decoder falls back. Both appended turns are persisted
// asynchronously, best-effort.
func (s *Session) Send(ctx context.Context, text string) (chat.View, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return s.View(), ErrEmptyMessage
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return s.View(), ErrSendInFlight
	}
	s.sending = true

	// History and avoidance are computed from the list as it was
	// before this turn.
	history := s.historyWindowLocked()
	avoid := s.suggestedNamesLocked()

	userMsg := chat.NewLocalMessage(chat.RoleUser, trimmed, nil)
	s.messages = append(s.messages, userMsg)
	s.mu.Unlock()

	s.persistAsync(userMsg)

	reply := s.ai.Decode(ctx, trimmed, history, avoid)

	assistantMsg := chat.NewLocalMessage(chat.RoleAssistant, reply.Text, reply.Recipe)

	s.mu.Lock()
	s.messages = append(s.messages, assistantMsg)
	s.sending = false
	s.mu.Unlock()

	s.persistAsync(assistantMsg)

	return s.View(), nil
}

// View returns a snapshot of session state for rendering.
func (s *Session) View() chat.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]chat.Message, len(s.messages))
	copy(messages, s.messages)

	return chat.View{
		Messages:        messages,
		HasMore:         s.hasMore,
		IsLoadingOlder:  s.loadingOlder,
		IsSending:       s.sending,
		OldestTimestamp: s.oldest,
	}
}

// PreserveScrollAnchor reports whether the presentation layer should
// suppress auto-scroll-to-bottom: true exactly while an older-page
// load is in flight.
func (s *Session) PreserveScrollAnchor() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingOlder
}

// Flush waits for pending asynchronous persists. Used on shutdown and
// in tests; callers on the hot path never wait.
func (s *Session) Flush() {
	s.persistWG.Wait()
}

// historyWindowLocked returns the last messages, oldest first, as model
// turns. Caller holds s.mu.
func (s *Session) historyWindowLocked() []outbound.ChatTurn {
	start := len(s.messages) - historyWindow
	if start < 0 {
		start = 0
	}
	window := s.messages[start:]

	turns := make([]outbound.ChatTurn, len(window))
	for i, m := range window {
		turns[i] = outbound.ChatTurn{Role: m.Role, Content: m.Content}
	}
	return turns
}

// suggestedNamesLocked returns the distinct recipe names already
// visible in the session, in first-appearance order. Caller holds s.mu.
func (s *Session) suggestedNamesLocked() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range s.messages {
		if m.Recipe == nil || m.Recipe.Name == "" {
			continue
		}
		if _, ok := seen[m.Recipe.Name]; ok {
			continue
		}
		seen[m.Recipe.Name] = struct{}{}
		names = append(names, m.Recipe.Name)
	}
	return names
}

// persistAsync saves a locally appended message without blocking the
// caller. Failures are logged and never roll back local state; the
// session's in-memory list stays authoritative.
func (s *Session) persistAsync(msg chat.Message) {
	if msg.Persisted {
		return
	}

	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()

		stored, err := s.repo.Insert(context.Background(), s.caller, msg)
		if err != nil {
			s.logger.Error("failed to persist message",
				zap.String("user_id", s.caller.ID),
				zap.String("message_id", msg.ID),
				zap.Error(err),
			)
			return
		}
		if stored == nil {
			// Anonymous caller, nothing saved.
			return
		}

		s.mu.Lock()
		for i := range s.messages {
			if s.messages[i].ID == msg.ID {
				s.messages[i].Persisted = true
				break
			}
		}
		s.mu.Unlock()
	}()
}

// pageFromRows converts a newest-first fetch of up to pageSize+1 rows
// into an ascending page, dropping the has-more probe row.
func pageFromRows(rows []chat.Message, pageSize int) chat.Page {
	hasMore := len(rows) > pageSize
	if hasMore {
		rows = rows[:pageSize]
	}

	messages := make([]chat.Message, len(rows))
	for i, m := range rows {
		messages[len(rows)-1-i] = m
	}

	page := chat.Page{Messages: messages, HasMore: hasMore}
	if len(messages) > 0 {
		page.OldestTimestamp = messages[0].Timestamp
	}
	return page
}
