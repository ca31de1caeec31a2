// Package chat drives one request/response exchange with the response
// provider per send action: append the user message, append an assistant
// placeholder, then patch the placeholder as fragments stream in.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/neilberkman/biodish/internal/core/attach"
	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/llm"
	"github.com/neilberkman/biodish/internal/core/models"
	"github.com/neilberkman/biodish/internal/core/store"
)

// State is the lifecycle of the current (or last) exchange.
type State int

const (
	StateIdle State = iota
	StateSending
	StateStreaming
	StateComplete
	StateFailed
)

var (
	// ErrBusy means an exchange is already in flight. At most one exchange
	// runs at a time, regardless of which session it targets.
	ErrBusy = errors.New("an exchange is already in flight")

	// ErrEmptyMessage means there was neither text nor an attachment.
	ErrEmptyMessage = errors.New("nothing to send")
)

// SendRequest is one user send action.
type SendRequest struct {
	Text           string
	AttachmentPath string // optional; encoded before anything is appended
}

// Coordinator owns the single-flight send pipeline.
//
// Known quirk: each fragment caches the
// accumulated text under the language that is active when the fragment is
// applied. Switching the display language mid-stream therefore leaves a
// partial entry under the old language; the translation synchronizer
// re-runs after the stream settles and repairs it.
type Coordinator struct {
	store    *store.SessionStore
	provider llm.StreamProvider

	mu    sync.Mutex
	busy  bool
	state State
}

// New creates a coordinator over the given store and response provider.
func New(st *store.SessionStore, provider llm.StreamProvider) *Coordinator {
	return &Coordinator{store: st, provider: provider, state: StateIdle}
}

// Busy reports whether an exchange is in flight. The UI disables sends
// while true.
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// State returns the lifecycle state of the current or last exchange.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Send runs one full exchange and blocks until it completes or fails.
//
// The returned error covers only aborts that leave no trace in the session
// (busy, empty input, attachment encode failure). Provider failures are
// converted into an error-flagged assistant message and reported through
// State, never returned — the conversation itself shows the failure.
//
// The target session id is resolved once, up front, and threaded through
// the whole exchange; a concurrent selection change cannot redirect it.
func (c *Coordinator) Send(ctx context.Context, req SendRequest) (sessionID string, err error) {
	if strings.TrimSpace(req.Text) == "" && req.AttachmentPath == "" {
		return "", ErrEmptyMessage
	}

	// Acquire the single-flight slot before touching any state; taking it
	// any later would let two sends interleave their appends.
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.busy = true
	c.state = StateSending
	c.mu.Unlock()

	release := func(final State) {
		c.mu.Lock()
		c.busy = false
		c.state = final
		c.mu.Unlock()
	}

	// Encode the attachment before appending anything, so a failed read
	// aborts the send with the session untouched.
	var attachment *models.Attachment
	if req.AttachmentPath != "" {
		attachment, err = attach.Encode(req.AttachmentPath)
		if err != nil {
			release(StateIdle)
			return "", err
		}
	}

	lang := c.store.Language()

	sessionID = c.store.ActiveSessionID()
	if sessionID == "" {
		sessionID = c.store.CreateSession(i18n.T(lang.Code).NewChat)
	}

	// Snapshot the history before appending; the provider receives these
	// turns plus the new message, and never the placeholder.
	history := historyTurns(c.store.Messages(sessionID))

	userMsg := models.NewUserMessage(req.Text, lang.Code, attachment)
	if err := c.store.AppendMessage(sessionID, userMsg); err != nil {
		release(StateFailed)
		return sessionID, err
	}

	placeholder := models.NewModelPlaceholder()
	if err := c.store.AppendMessage(sessionID, placeholder); err != nil {
		release(StateFailed)
		return sessionID, err
	}

	var accumulated strings.Builder
	streamErr := c.provider.StreamGenerate(ctx, llm.GenerateRequest{
		History:    history,
		Message:    req.Text,
		Language:   lang,
		Attachment: attachment,
	}, func(fragment string) error {
		accumulated.WriteString(fragment)
		text := accumulated.String()

		// The display language is read when each fragment lands, not
		// fixed at send time.
		current := c.store.Language()

		c.mu.Lock()
		c.state = StateStreaming
		c.mu.Unlock()

		return c.store.UpdateMessage(sessionID, placeholder.ID, func(m *models.Message) {
			m.Text = text
			if m.Translations == nil {
				m.Translations = map[string]string{}
			}
			m.Translations[current.Code] = text
		})
	})

	if streamErr != nil {
		// Convert the failure into a visible, permanently flagged error
		// message; the translation cache is left alone.
		errText := i18n.T(c.store.Language().Code).ErrorGeneric
		_ = c.store.UpdateMessage(sessionID, placeholder.ID, func(m *models.Message) {
			m.Text = errText
			m.IsError = true
		})
		release(StateFailed)
		return sessionID, nil
	}

	release(StateComplete)
	return sessionID, nil
}

func historyTurns(msgs []models.Message) []llm.Turn {
	turns := make([]llm.Turn, 0, len(msgs))
	for _, m := range msgs {
		if m.Text == "" {
			continue
		}
		turns = append(turns, llm.Turn{Role: m.Role, Text: m.Text})
	}
	return turns
}
