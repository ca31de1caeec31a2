// Package store owns the session collection: the single piece of mutable
// shared state in the application. Every component mutates sessions through
// the store's operations; the store persists the whole collection to its
// blob backend on every change and notifies subscribers so the UI and the
// translation synchronizer can react without holding their own copies.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/models"
)

// ErrNotFound is returned by UpdateMessage when the session or message no
// longer exists. Callers that merge asynchronous results treat it as "skip".
var ErrNotFound = errors.New("not found")

// EventKind classifies a store change notification.
type EventKind int

const (
	EventSessionCreated EventKind = iota
	EventSessionSelected
	EventSessionDeleted
	EventMessageAppended
	EventMessageUpdated
	EventLanguageChanged
)

// Event is a store change notification.
type Event struct {
	Kind      EventKind
	SessionID string
	MessageID string
}

// envelope is the persisted blob format. Version 0 wrote a bare session
// array; decoding tolerates both.
type envelope struct {
	Version  int                   `json:"version"`
	Sessions []*models.ChatSession `json:"sessions"`
}

const envelopeVersion = 1

// SessionStore holds the ordered session collection, the active selection
// and the active display language.
type SessionStore struct {
	mu       sync.Mutex
	blob     BlobStore
	sessions []*models.ChatSession // newest first
	activeID string                // "" = none
	lang     i18n.Language
	subs     []chan Event
}

// New loads any previously persisted sessions from blob.
func New(blob BlobStore, lang i18n.Language) (*SessionStore, error) {
	s := &SessionStore{blob: blob, lang: lang}

	data, err := blob.Get(SessionsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if len(data) > 0 {
		var env envelope
		if err := json.Unmarshal(data, &env); err == nil && env.Sessions != nil {
			s.sessions = env.Sessions
		} else {
			// Legacy format: bare array
			var bare []*models.ChatSession
			if err := json.Unmarshal(data, &bare); err != nil {
				return nil, fmt.Errorf("failed to decode sessions: %w", err)
			}
			s.sessions = bare
		}
	}
	return s, nil
}

// Close closes the blob backend.
func (s *SessionStore) Close() error {
	return s.blob.Close()
}

// Subscribe returns a channel of change events. Slow subscribers are never
// blocked on; events that cannot be buffered are dropped.
func (s *SessionStore) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 64)
	s.subs = append(s.subs, ch)
	return ch
}

// Language returns the active display language.
func (s *SessionStore) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage switches the active display language. Not persisted; it is
// interface state, but subscribers (the translation synchronizer) are told.
func (s *SessionStore) SetLanguage(l i18n.Language) {
	s.mu.Lock()
	if s.lang.Code == l.Code {
		s.mu.Unlock()
		return
	}
	s.lang = l
	s.mu.Unlock()
	s.notify(Event{Kind: EventLanguageChanged})
}

// CreateSession inserts a new session at the front of the list, makes it
// active, and returns its id. Callers must thread the returned id through
// any in-flight exchange instead of re-reading the active selection, which
// concurrent operations may have moved.
func (s *SessionStore) CreateSession(title string) string {
	sess := models.NewChatSession(title)

	s.mu.Lock()
	s.sessions = append([]*models.ChatSession{&sess}, s.sessions...)
	s.activeID = sess.ID
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventSessionCreated, SessionID: sess.ID})
	return sess.ID
}

// SelectSession changes the active selection; "" selects none.
func (s *SessionStore) SelectSession(id string) {
	s.mu.Lock()
	s.activeID = id
	s.mu.Unlock()
	s.notify(Event{Kind: EventSessionSelected, SessionID: id})
}

// ActiveSessionID returns the active selection, "" when none.
func (s *SessionStore) ActiveSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// DeleteSession removes a session. Unknown ids are a silent no-op. If the
// deleted session was active, the selection becomes none.
func (s *SessionStore) DeleteSession(id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	if s.activeID == id {
		s.activeID = ""
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventSessionDeleted, SessionID: id})
}

// AppendMessage appends msg to the session's message list. The first user
// message also titles the session.
func (s *SessionStore) AppendMessage(sessionID string, msg models.Message) error {
	s.mu.Lock()
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	sess := s.sessions[idx]
	if msg.Role == models.RoleUser && len(sess.Messages) == 0 {
		sess.Title = models.TitleFrom(msg.Text)
	}
	sess.Messages = append(sess.Messages, msg)
	sess.LastUpdated = time.Now()
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventMessageAppended, SessionID: sessionID, MessageID: msg.ID})
	return nil
}

// UpdateMessage applies patch to exactly the message matching messageID in
// sessionID, leaving everything else untouched. Returns ErrNotFound when
// either id is gone, so late merges can skip deleted targets.
func (s *SessionStore) UpdateMessage(sessionID, messageID string, patch func(*models.Message)) error {
	s.mu.Lock()
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	sess := s.sessions[idx]
	var target *models.Message
	for i := range sess.Messages {
		if sess.Messages[i].ID == messageID {
			target = &sess.Messages[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}
	patch(target)
	sess.LastUpdated = time.Now()
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventMessageUpdated, SessionID: sessionID, MessageID: messageID})
	return nil
}

// Sessions returns deep copies of all sessions, newest first.
func (s *SessionStore) Sessions() []models.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatSession, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// Session returns a deep copy of one session.
func (s *SessionStore) Session(id string) (models.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return models.ChatSession{}, false
	}
	return s.sessions[idx].Clone(), true
}

// Messages returns deep copies of one session's messages.
func (s *SessionStore) Messages(sessionID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		return nil
	}
	msgs := make([]models.Message, len(s.sessions[idx].Messages))
	for i, m := range s.sessions[idx].Messages {
		msgs[i] = m.Clone()
	}
	return msgs
}

// ActiveMessages returns the active session's messages, nil when no
// session is selected.
func (s *SessionStore) ActiveMessages() []models.Message {
	s.mu.Lock()
	id := s.activeID
	s.mu.Unlock()
	if id == "" {
		return nil
	}
	return s.Messages(id)
}

func (s *SessionStore) indexLocked(id string) int {
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked serializes the whole collection to the blob store.
// Best-effort: a failed write is logged and the in-memory state stays
// authoritative.
func (s *SessionStore) persistLocked() {
	data, err := json.Marshal(envelope{Version: envelopeVersion, Sessions: s.sessions})
	if err != nil {
		log.Printf("store: failed to encode sessions: %v", err)
		return
	}
	if err := s.blob.Set(SessionsKey, data); err != nil {
		log.Printf("store: failed to persist sessions: %v", err)
	}
}

func (s *SessionStore) notify(ev Event) {
	s.mu.Lock()
	subs := make([]chan Event, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			// Subscriber buffer full; it will catch up on the next event.
		}
	}
}
