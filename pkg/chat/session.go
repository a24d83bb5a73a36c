package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/weftdev/weft/pkg/site"
)

// DefaultTitle is the title of a session before its first user message.
const DefaultTitle = "New Chat"

// titlePrefixLen is how many runes of the first user message become the
// session title.
const titlePrefixLen = 30

// Session is one chat conversation plus the most recent generated artifact
// associated with it. Messages are append-only and never reordered.
type Session struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Messages      []Message  `json:"messages"`
	CreatedAt     time.Time  `json:"created_at"`
	GeneratedCode *site.Code `json:"generated_code,omitempty"`
	ProjectTitle  string     `json:"project_title,omitempty"`
}

// NewSession creates an empty session with a fresh id and default title.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		Messages:  make([]Message, 0),
		CreatedAt: time.Now(),
	}
}

// append adds a message to the transcript. The first user message freezes
// the session title to its truncated prefix.
func (s *Session) append(msg Message) {
	if msg.IsUser() && len(s.Messages) == 0 {
		s.Title = titleFromMessage(msg.Content)
	}
	s.Messages = append(s.Messages, msg)
}

// finishStreaming clears the streaming flag on the last assistant message.
func (s *Session) finishStreaming() {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].IsAssistant() {
			s.Messages[i].IsStreaming = false
			return
		}
	}
}

// lastUserMessage returns the most recent user message, if any.
func (s *Session) lastUserMessage() (Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].IsUser() {
			return s.Messages[i], true
		}
	}
	return Message{}, false
}

// snapshot returns a copy safe to hand to readers while the session keeps
// being mutated.
func (s *Session) snapshot() Session {
	out := *s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	if s.GeneratedCode != nil {
		code := *s.GeneratedCode
		out.GeneratedCode = &code
	}
	return out
}

func titleFromMessage(content string) string {
	runes := []rune(content)
	if len(runes) > titlePrefixLen {
		runes = runes[:titlePrefixLen]
	}
	return string(runes) + "..."
}
