package chat

import (
	"sync"

	"github.com/weftdev/weft/pkg/site"
)

// Store owns the single current session and the ordered archive of past
// sessions. Exactly one session is current at any time and it is never also
// present in the archive. All operations are total: there is nothing to
// fail, only state to move around.
type Store struct {
	mu      sync.RWMutex
	current *Session
	archive []*Session
}

// NewStore creates a store with a fresh empty current session.
func NewStore() *Store {
	return &Store{
		current: NewSession(),
		archive: make([]*Session, 0),
	}
}

// Current returns a copy of the current session.
func (st *Store) Current() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.snapshot()
}

// CurrentID returns the id of the current session.
func (st *Store) CurrentID() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.ID
}

// Archived returns copies of the archived sessions in insertion order.
func (st *Store) Archived() []Session {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]Session, len(st.archive))
	for i, s := range st.archive {
		out[i] = s.snapshot()
	}
	return out
}

// AppendUserMessage appends a user message to the current transcript and
// returns it. The first message of a session freezes the title.
func (st *Store) AppendUserMessage(content string) Message {
	st.mu.Lock()
	defer st.mu.Unlock()

	msg := NewUserMessage(content)
	st.current.append(msg)
	return msg
}

// AppendAssistantMessage appends an assistant message, marked as streaming
// while its reveal is in progress.
func (st *Store) AppendAssistantMessage(content string) Message {
	st.mu.Lock()
	defer st.mu.Unlock()

	msg := NewStreamingAssistantMessage(content)
	st.current.append(msg)
	return msg
}

// FinishStreaming clears the streaming flag on the most recent assistant
// message of the current session.
func (st *Store) FinishStreaming() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current.finishStreaming()
}

// LastUserMessage returns the most recent user message of the current
// session.
func (st *Store) LastUserMessage() (Message, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.lastUserMessage()
}

// SetGeneratedCode snapshots the generated artifact onto the current
// session so switching away and back restores it.
func (st *Store) SetGeneratedCode(code site.Code, projectTitle string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	c := code
	st.current.GeneratedCode = &c
	st.current.ProjectTitle = projectTitle
}

// NewSession archives the current session and makes a fresh one current.
// The previous session is appended to the archive unless already present.
func (st *Store) NewSession() Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.archiveCurrentLocked()
	st.current = NewSession()
	return st.current.snapshot()
}

// Delete removes the session with the given id from the archive. Deleting
// the current session replaces it with a fresh one, as it cannot remain
// current.
func (st *Store) Delete(id string) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.archive = removeByID(st.archive, id)
	if st.current.ID == id {
		st.current = NewSession()
	}
	return st.current.snapshot()
}

// Switch makes the archived session with the given id current, moving the
// previously current session into the archive. Returns false if no archived
// session has that id.
func (st *Store) Switch(id string) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	var target *Session
	for _, s := range st.archive {
		if s.ID == id {
			target = s
			break
		}
	}
	if target == nil {
		return Session{}, false
	}

	st.archiveCurrentLocked()
	st.archive = removeByID(st.archive, id)
	st.current = target
	return st.current.snapshot(), true
}

// archiveCurrentLocked appends the current session to the archive without
// duplicating an existing entry. Caller holds the lock.
func (st *Store) archiveCurrentLocked() {
	for _, s := range st.archive {
		if s.ID == st.current.ID {
			return
		}
	}
	st.archive = append(st.archive, st.current)
}

func removeByID(sessions []*Session, id string) []*Session {
	out := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
