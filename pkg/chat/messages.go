package chat

import (
	"strings"
	"time"
)

// Message is one entry in a session transcript. Content is immutable once
// created; the only permitted mutation is clearing IsStreaming when the
// reveal animation for an assistant message finishes.
type Message struct {
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	IsStreaming bool      `json:"is_streaming,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

func NewUserMessage(content string) Message {
	return Message{
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewStreamingAssistantMessage creates an assistant message whose reveal
// animation is still in progress.
func NewStreamingAssistantMessage(content string) Message {
	msg := NewAssistantMessage(content)
	msg.IsStreaming = true
	return msg
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}
