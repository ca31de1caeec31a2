package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TitleLimit is the number of characters of the first user message used as
// a session title.
const TitleLimit = 30

// ChatSession is a titled, ordered conversation thread. Messages are
// append-only in index order; individual messages are mutated in place by
// id, never reordered or removed.
type ChatSession struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewChatSession creates an empty session with the given default title
// (typically the localized "New Chat" label).
func NewChatSession(title string) ChatSession {
	return ChatSession{
		ID:          uuid.NewString(),
		Title:       title,
		Messages:    []Message{},
		LastUpdated: time.Now(),
	}
}

// TitleFrom derives a session title from the first user message text.
func TitleFrom(text string) string {
	runes := []rune(text)
	if len(runes) > TitleLimit {
		return string(runes[:TitleLimit])
	}
	return text
}

// Validate checks that the session has required fields
func (s *ChatSession) Validate() error {
	if s.ID == "" {
		return errors.New("session id is required")
	}
	if s.Title == "" {
		return errors.New("session title is required")
	}
	return nil
}

// Clone returns a deep copy of the session. The store hands out clones so
// callers can never mutate shared state behind its back.
func (s *ChatSession) Clone() ChatSession {
	out := *s
	out.Messages = make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		out.Messages[i] = m.Clone()
	}
	return out
}
