package handlers

import (
	"net/http"

	"github.com/vothanhthong/yummyai/internal/infrastructure/http/middleware"
	"github.com/vothanhthong/yummyai/internal/ports/inbound"
	"go.uber.org/zap"
)

// ChatAPIHandlers serves the chat session endpoints.
type ChatAPIHandlers struct {
	chatService inbound.ChatService
	logger      *zap.Logger
}

// NewChatAPIHandlers creates the chat handlers.
func NewChatAPIHandlers(chatService inbound.ChatService, logger *zap.Logger) *ChatAPIHandlers {
	return &ChatAPIHandlers{chatService: chatService, logger: logger}
}

// SendMessageRequest is the POST /chat/send payload.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// History handles GET /api/v1/chat/history: the current session view,
// loading the newest page on first access.
func (h *ChatAPIHandlers) History(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.chatService.History(r.Context(), caller))
}

// LoadOlder handles POST /api/v1/chat/history/older: one backfill page.
func (h *ChatAPIHandlers) LoadOlder(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.chatService.LoadOlder(r.Context(), caller))
}

// Send handles POST /api/v1/chat/send.
func (h *ChatAPIHandlers) Send(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.chatService.Send(r.Context(), caller, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Clear handles DELETE /api/v1/chat/history.
func (h *ChatAPIHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	if err := h.chatService.Clear(r.Context(), caller); err != nil {
		h.logger.Error("failed to clear chat history",
			zap.String("user_id", caller.ID),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
