package controller

import (
	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
)

// Socket frame types. Clients send subscribe/unsubscribe/message, the server
// answers with ack/history/message/error.
const (
	FrameSubscribe   = "subscribe"
	FrameUnsubscribe = "unsubscribe"
	FrameMessage     = "message"
	FrameAck         = "ack"
	FrameHistory     = "history"
	FrameError       = "error"
)

// ClientFrame is one inbound socket frame.
// Content is only read for "message" frames.
type ClientFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
	Content        string `json:"content,omitempty"`
}

// ServerFrame is one outbound socket frame. Exactly one of Message or
// Messages is set depending on Type.
type ServerFrame struct {
	Type           string              `json:"type"`
	ConversationID string              `json:"conversation_id,omitempty"`
	Message        *messaging.Message  `json:"message,omitempty"`
	Messages       []messaging.Message `json:"messages,omitempty"`
	Error          string              `json:"error,omitempty"`
}
