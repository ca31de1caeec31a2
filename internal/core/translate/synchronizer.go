// Package translate keeps the per-message translation cache consistent
// with the active display language. A background pass computes which
// messages of the active session lack a cached translation, fans out one
// provider call per candidate, and merges the results back in a single
// batch once every call has settled.
package translate

import (
	"context"
	"sync"
	"time"

	"github.com/neilberkman/biodish/internal/core/llm"
	"github.com/neilberkman/biodish/internal/core/models"
	"github.com/neilberkman/biodish/internal/core/store"
)

// Synchronizer runs translation passes against the active session.
//
// A pass may capture the text of a message that is still streaming; the
// merged translation is then a prefix. That is accepted: the store emits
// another event when the stream extends the message, which re-triggers the
// synchronizer, and the settled text gets a fresh pass.
type Synchronizer struct {
	store      *store.SessionStore
	translator llm.Translator
	timeout    time.Duration // per provider call; 0 = none

	passMu sync.Mutex // serializes passes: fan-in completes before the next fan-out

	flagMu      sync.Mutex
	translating bool
}

// New creates a synchronizer. timeout bounds each provider call.
func New(st *store.SessionStore, translator llm.Translator, timeout time.Duration) *Synchronizer {
	return &Synchronizer{store: st, translator: translator, timeout: timeout}
}

// Translating reports whether a pass is in flight; the UI shows a banner
// while true.
func (s *Synchronizer) Translating() bool {
	s.flagMu.Lock()
	defer s.flagMu.Unlock()
	return s.translating
}

func (s *Synchronizer) setTranslating(v bool) {
	s.flagMu.Lock()
	s.translating = v
	s.flagMu.Unlock()
}

// Run subscribes to store events and executes passes until ctx is
// cancelled. Intended to run on its own goroutine.
func (s *Synchronizer) Run(ctx context.Context) {
	events := s.store.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !s.relevant(ev) {
				continue
			}
			// Coalesce bursts (streaming emits one event per fragment).
		drain:
			for {
				select {
				case <-events:
				default:
					break drain
				}
			}
			s.Sync(ctx)
		}
	}
}

func (s *Synchronizer) relevant(ev store.Event) bool {
	switch ev.Kind {
	case store.EventLanguageChanged, store.EventSessionSelected, store.EventSessionCreated:
		return true
	case store.EventMessageAppended, store.EventMessageUpdated:
		return ev.SessionID == s.store.ActiveSessionID()
	default:
		return false
	}
}

// Sync runs one synchronization pass and returns the number of provider
// calls issued. A pass with an empty candidate set does nothing.
func (s *Synchronizer) Sync(ctx context.Context) int {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	sessionID := s.store.ActiveSessionID()
	if sessionID == "" {
		return 0
	}
	lang := s.store.Language()

	// Candidate set: non-empty messages with no cached entry for the
	// active language. Text is captured here; the merge below goes back
	// through the store by id rather than trusting this snapshot's
	// positions.
	type candidate struct {
		id   string
		text string
	}
	var candidates []candidate
	for _, m := range s.store.Messages(sessionID) {
		if m.Text == "" {
			continue
		}
		if _, ok := m.Translations[lang.Code]; ok {
			continue
		}
		candidates = append(candidates, candidate{id: m.ID, text: m.Text})
	}
	if len(candidates) == 0 {
		return 0
	}

	s.setTranslating(true)
	defer s.setTranslating(false)

	// Fan-out: one concurrent provider call per candidate. Individual
	// failures degrade to the source text, so the merge never has a hole.
	results := make([]string, len(candidates))
	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c candidate) {
			defer wg.Done()
			callCtx := ctx
			if s.timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, s.timeout)
				defer cancel()
			}
			out, err := s.translator.Translate(callCtx, c.text, lang)
			if err != nil || out == "" {
				out = c.text
			}
			results[i] = out
		}(i, c)
	}
	wg.Wait()

	// Fan-in: merge everything in one batch, by message id. Sessions or
	// messages deleted mid-flight are skipped, not errors.
	for i, c := range candidates {
		_ = s.store.UpdateMessage(sessionID, c.id, func(m *models.Message) {
			if m.Translations == nil {
				m.Translations = map[string]string{}
			}
			m.Translations[lang.Code] = results[i]
		})
	}

	return len(candidates)
}
