package chat

import (
	"context"
	"sync"

	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/identity"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service manages one Session per caller and adapts them to the
// inbound ChatService interface consumed by the handlers.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session

	repo   outbound.MessageRepository
	ai     outbound.AIService
	logger *zap.Logger
}

// NewService creates the chat session service.
func NewService(repo outbound.MessageRepository, ai outbound.AIService, logger *zap.Logger) *Service {
	return &Service{
		sessions: make(map[string]*Session),
		repo:     repo,
		ai:       ai,
		logger:   logger,
	}
}

// session returns the caller's session, loading the initial page the
// first time the caller is seen. LoadInitial is once-guarded, so
// concurrent first requests all wait for the same load.
func (s *Service) session(ctx context.Context, caller identity.User) *Session {
	s.mu.Lock()
	sess, ok := s.sessions[caller.ID]
	if !ok {
		sess = NewSession(caller, s.repo, s.ai, s.logger)
		s.sessions[caller.ID] = sess
	}
	s.mu.Unlock()

	sess.LoadInitial(ctx)
	return sess
}

// History returns the caller's current session view.
func (s *Service) History(ctx context.Context, caller identity.User) chat.View {
	return s.session(ctx, caller).View()
}

// LoadOlder backfills one page of older history and returns the
// updated view.
func (s *Service) LoadOlder(ctx context.Context, caller identity.User) chat.View {
	sess := s.session(ctx, caller)
	sess.LoadOlder(ctx)
	return sess.View()
}

// Send appends the caller's turn and the decoded assistant reply.
func (s *Service) Send(ctx context.Context, caller identity.User, text string) (chat.View, error) {
	return s.session(ctx, caller).Send(ctx, text)
}

// Clear deletes the caller's durable history and resets the runtime
// session, so the next History call starts from the welcome message.
func (s *Service) Clear(ctx context.Context, caller identity.User) error {
	if err := s.repo.DeleteAll(ctx, caller); err != nil {
		return err
	}

	s.mu.Lock()
	sess, ok := s.sessions[caller.ID]
	delete(s.sessions, caller.ID)
	s.mu.Unlock()

	if ok {
		// Let in-flight persists finish before the session goes away.
		sess.Flush()
	}
	return nil
}

// FlushAll waits for every session's pending persists. Called on
// shutdown.
func (s *Service) FlushAll() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Flush()
	}
}
