package messaging

import (
	"errors"
	"strings"
	"time"
)

// Domain-level errors for messaging behaviors
var (
	ErrEmptyContent   = errors.New("messaging: empty message content")
	ErrNotParticipant = errors.New("messaging: sender is not a participant in the conversation")
)

// Message is an immutable log entry in a conversation, ordered by CreatedAt.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes an outbound message. Content is trimmed;
// an empty result is rejected before any persistence is attempted.
func NewMessage(conversationID, senderID, content string) (*Message, error) {
	if conversationID == "" || senderID == "" {
		return nil, errors.New("messaging: conversation_id and sender_id are required")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
