package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	AssistantKind string `json:"assistant_kind" validate:"omitempty,oneof=receptionist triage"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	AssistantKind string     `json:"assistant_kind"`
	Summary       *string    `json:"summary,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id          uuid.UUID `json:"id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	IsStreaming bool      `json:"is_streaming"`
	CreatedAt   time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Content       string    `json:"content" validate:"required,max=4000"`
}

// StreamEvent is one SSE frame of an assistant reply. Token carries the new
// fragment; Accumulated carries the full text so far so reconnecting
// clients can resync without replaying.
type StreamEvent struct {
	Type        string    `json:"type"` // "token" | "done" | "error"
	MessageId   uuid.UUID `json:"message_id"`
	Token       string    `json:"token,omitempty"`
	Accumulated string    `json:"accumulated,omitempty"`
	Error       string    `json:"error,omitempty"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
}
