package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/models"
	"github.com/neilberkman/biodish/internal/core/store"
)

type memBlob struct {
	data map[string][]byte
}

func (m *memBlob) Get(key string) ([]byte, error)    { return m.data[key], nil }
func (m *memBlob) Set(key string, data []byte) error { m.data[key] = data; return nil }
func (m *memBlob) Close() error                      { return nil }

func newTestStore(t *testing.T) *store.SessionStore {
	t.Helper()
	s, err := store.New(&memBlob{data: map[string][]byte{}}, i18n.Default)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	return s
}

// fakeTranslator counts calls and prefixes translations so merged values
// are distinguishable from source text.
type fakeTranslator struct {
	mu     sync.Mutex
	calls  int
	err    error
	onCall func() // runs inside Translate, before returning
}

func (f *fakeTranslator) Translate(ctx context.Context, text string, lang i18n.Language) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("[%s] %s", lang.Code, text), nil
}

func (f *fakeTranslator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSyncNoActiveSession(t *testing.T) {
	st := newTestStore(t)
	tr := &fakeTranslator{}
	s := New(st, tr, 0)

	if n := s.Sync(context.Background()); n != 0 {
		t.Errorf("Sync() = %d, want 0", n)
	}
	if tr.callCount() != 0 {
		t.Errorf("translator called %d times for empty store", tr.callCount())
	}
}

func TestSyncTranslatesMissingEntriesOnly(t *testing.T) {
	st := newTestStore(t)
	id := st.CreateSession("New Chat")
	_ = st.AppendMessage(id, models.NewUserMessage("question", "en", nil))
	reply := models.NewModelPlaceholder()
	reply.Text = "answer"
	reply.Translations["en"] = "answer"
	_ = st.AppendMessage(id, reply)

	lang, _ := i18n.ByCode("tr")
	st.SetLanguage(lang)

	tr := &fakeTranslator{}
	s := New(st, tr, 0)

	// Both messages lack a Turkish entry: two calls, one per candidate.
	if n := s.Sync(context.Background()); n != 2 {
		t.Errorf("first Sync() = %d, want 2", n)
	}
	msgs := st.Messages(id)
	if got := msgs[0].Translations["tr"]; got != "[tr] question" {
		t.Errorf("user tr cache = %q", got)
	}
	if got := msgs[1].Translations["tr"]; got != "[tr] answer" {
		t.Errorf("reply tr cache = %q", got)
	}

	// Fully cached now: a second pass issues no calls.
	if n := s.Sync(context.Background()); n != 0 {
		t.Errorf("second Sync() = %d, want 0", n)
	}
	if tr.callCount() != 2 {
		t.Errorf("translator called %d times total, want 2", tr.callCount())
	}

	// And no existing entry was overwritten.
	msgs = st.Messages(id)
	if got := msgs[0].Translations["en"]; got != "question" {
		t.Errorf("seeded en cache changed to %q", got)
	}
	if got := msgs[1].Translations["en"]; got != "answer" {
		t.Errorf("existing en cache changed to %q", got)
	}
}

func TestSyncSkipsEmptyMessages(t *testing.T) {
	st := newTestStore(t)
	id := st.CreateSession("New Chat")
	_ = st.AppendMessage(id, models.NewUserMessage("question", "en", nil))
	_ = st.AppendMessage(id, models.NewModelPlaceholder()) // still streaming, empty

	lang, _ := i18n.ByCode("de")
	st.SetLanguage(lang)

	tr := &fakeTranslator{}
	s := New(st, tr, 0)

	if n := s.Sync(context.Background()); n != 1 {
		t.Errorf("Sync() = %d, want 1 (placeholder skipped)", n)
	}
}

func TestSyncFallsBackToSourceOnFailure(t *testing.T) {
	st := newTestStore(t)
	id := st.CreateSession("New Chat")
	_ = st.AppendMessage(id, models.NewUserMessage("question", "en", nil))

	lang, _ := i18n.ByCode("fr")
	st.SetLanguage(lang)

	tr := &fakeTranslator{err: errors.New("provider down")}
	s := New(st, tr, 0)

	if n := s.Sync(context.Background()); n != 1 {
		t.Errorf("Sync() = %d, want 1", n)
	}
	msgs := st.Messages(id)
	// The echo fallback caches the source text so the pass never reruns
	// for this message.
	if got := msgs[0].Translations["fr"]; got != "question" {
		t.Errorf("fallback cache = %q, want source text", got)
	}
	if n := s.Sync(context.Background()); n != 0 {
		t.Errorf("Sync() after fallback = %d, want 0", n)
	}
}

func TestSyncSkipsSessionDeletedMidFlight(t *testing.T) {
	st := newTestStore(t)
	id := st.CreateSession("New Chat")
	_ = st.AppendMessage(id, models.NewUserMessage("question", "en", nil))

	lang, _ := i18n.ByCode("es")
	st.SetLanguage(lang)

	tr := &fakeTranslator{}
	tr.onCall = func() { st.DeleteSession(id) }
	s := New(st, tr, 0)

	// The merge targets a session that vanished while the call was in
	// flight; the pass completes without error and drops the result.
	if n := s.Sync(context.Background()); n != 1 {
		t.Errorf("Sync() = %d, want 1", n)
	}
	if len(st.Sessions()) != 0 {
		t.Error("deleted session came back")
	}
}

func TestTranslatingFlagClearsAfterPass(t *testing.T) {
	st := newTestStore(t)
	id := st.CreateSession("New Chat")
	_ = st.AppendMessage(id, models.NewUserMessage("question", "en", nil))

	lang, _ := i18n.ByCode("tr")
	st.SetLanguage(lang)

	s := New(st, &fakeTranslator{}, 0)
	s.Sync(context.Background())

	if s.Translating() {
		t.Error("Translating() still true after the pass settled")
	}
}
