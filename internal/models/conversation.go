package models

import (
	"time"

	"github.com/google/uuid"
)

// ContextType enumerates conversation contexts
type ContextType string

const (
	ContextGeneral ContextType = "general"
	ContextProject ContextType = "project"
	ContextTask    ContextType = "task"
)

// ValidContextType reports whether t is a known context type
func ValidContextType(t ContextType) bool {
	switch t {
	case ContextGeneral, ContextProject, ContextTask:
		return true
	}
	return false
}

// MessageRole enumerates message authors
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Conversation represents an AI assistant conversation
type Conversation struct {
	BaseModel

	UserID      uuid.UUID   `json:"userId" db:"user_id"`
	Title       string      `json:"title" db:"title"`
	ContextType ContextType `json:"contextType" db:"context_type"`
	IsPinned    bool        `json:"isPinned" db:"is_pinned"`

	// MessageCount is populated on listings only
	MessageCount int64 `json:"messageCount" db:"-"`
}

// Message represents a single conversation turn. Messages are append-only.
type Message struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	ConversationID uuid.UUID   `json:"conversationId" db:"conversation_id"`
	Role           MessageRole `json:"role" db:"role"`
	Content        string      `json:"content" db:"content"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
}
