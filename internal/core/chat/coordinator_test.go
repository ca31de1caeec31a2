package chat

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/llm"
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

// fakeProvider scripts a streaming response. between, when set, runs after
// each fragment; started/release coordinate the busy test.
type fakeProvider struct {
	fragments []string
	err       error
	between   func()
	started   chan struct{}
	release   chan struct{}
	once      sync.Once

	gotReq llm.GenerateRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) StreamGenerate(ctx context.Context, req llm.GenerateRequest, onFragment func(string) error) error {
	f.gotReq = req
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
	}
	if f.release != nil {
		<-f.release
	}
	for _, fr := range f.fragments {
		if err := onFragment(fr); err != nil {
			return err
		}
		if f.between != nil {
			f.between()
		}
	}
	return f.err
}

func TestSendFullExchange(t *testing.T) {
	st := newTestStore(t)
	provider := &fakeProvider{fragments: []string{"Hel", "lo"}}
	c := New(st, provider)

	sessionID, err := c.Send(context.Background(), SendRequest{Text: "hi"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if c.State() != StateComplete {
		t.Errorf("State() = %v, want StateComplete", c.State())
	}

	msgs := st.Messages(sessionID)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[0].Text != "hi" {
		t.Errorf("user message = %+v", msgs[0])
	}
	if got := msgs[0].Translations["en"]; got != "hi" {
		t.Errorf("user input-language cache = %q, want %q", got, "hi")
	}
	if msgs[1].Role != models.RoleModel || msgs[1].Text != "Hello" {
		t.Errorf("assistant message = %+v", msgs[1])
	}
	if got := msgs[1].Translations["en"]; got != "Hello" {
		t.Errorf("assistant streamed-language cache = %q, want %q", got, "Hello")
	}
	if msgs[1].IsError {
		t.Error("successful reply flagged as error")
	}
}

func TestSendEmptyMessage(t *testing.T) {
	st := newTestStore(t)
	c := New(st, &fakeProvider{})

	if _, err := c.Send(context.Background(), SendRequest{Text: "   "}); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Send() error = %v, want ErrEmptyMessage", err)
	}
	if len(st.Sessions()) != 0 {
		t.Error("empty send created a session")
	}
}

func TestSendWhileBusy(t *testing.T) {
	st := newTestStore(t)
	provider := &fakeProvider{
		fragments: []string{"ok"},
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	c := New(st, provider)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Send(context.Background(), SendRequest{Text: "first"})
	}()

	<-provider.started
	if _, err := c.Send(context.Background(), SendRequest{Text: "second"}); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Send() error = %v, want ErrBusy", err)
	}

	close(provider.release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("first send never finished")
	}

	// Slot released: sending works again.
	if _, err := c.Send(context.Background(), SendRequest{Text: "third"}); err != nil {
		t.Errorf("Send() after release error = %v", err)
	}
}

func TestSendProviderFailureBecomesErrorMessage(t *testing.T) {
	st := newTestStore(t)
	provider := &fakeProvider{err: errors.New("network down")}
	c := New(st, provider)

	sessionID, err := c.Send(context.Background(), SendRequest{Text: "hi"})
	if err != nil {
		t.Fatalf("Send() error = %v, want nil (failure surfaces in the conversation)", err)
	}
	if c.State() != StateFailed {
		t.Errorf("State() = %v, want StateFailed", c.State())
	}

	msgs := st.Messages(sessionID)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2 (user + error placeholder)", len(msgs))
	}
	last := msgs[1]
	if !last.IsError {
		t.Error("failed reply not flagged as error")
	}
	if want := i18n.T("en").ErrorGeneric; last.Text != want {
		t.Errorf("error text = %q, want %q", last.Text, want)
	}
	if len(last.Translations) != 0 {
		t.Errorf("error message has cached translations: %v", last.Translations)
	}
}

func TestSendHistoryExcludesCurrentTurn(t *testing.T) {
	st := newTestStore(t)
	id := st.CreateSession("New Chat")
	_ = st.AppendMessage(id, models.NewUserMessage("earlier question", "en", nil))
	prior := models.NewModelPlaceholder()
	prior.Text = "earlier answer"
	_ = st.AppendMessage(id, prior)

	provider := &fakeProvider{fragments: []string{"ok"}}
	c := New(st, provider)

	if _, err := c.Send(context.Background(), SendRequest{Text: "new question"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(provider.gotReq.History) != 2 {
		t.Fatalf("history has %d turns, want 2", len(provider.gotReq.History))
	}
	if provider.gotReq.History[0].Text != "earlier question" || provider.gotReq.History[1].Text != "earlier answer" {
		t.Errorf("history turns = %+v", provider.gotReq.History)
	}
	if provider.gotReq.Message != "new question" {
		t.Errorf("request message = %q, want %q", provider.gotReq.Message, "new question")
	}
}

func TestSendCreatesSessionWhenNoneActive(t *testing.T) {
	st := newTestStore(t)
	c := New(st, &fakeProvider{fragments: []string{"ok"}})

	sessionID, err := c.Send(context.Background(), SendRequest{Text: "hello there"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got := st.ActiveSessionID(); got != sessionID {
		t.Errorf("ActiveSessionID() = %q, want %q", got, sessionID)
	}
	sess, ok := st.Session(sessionID)
	if !ok {
		t.Fatal("created session not found")
	}
	if sess.Title != "hello there" {
		t.Errorf("session title = %q, want first message text", sess.Title)
	}
}

func TestSendReusesActiveSession(t *testing.T) {
	st := newTestStore(t)
	id := st.CreateSession("New Chat")
	c := New(st, &fakeProvider{fragments: []string{"ok"}})

	sessionID, err := c.Send(context.Background(), SendRequest{Text: "hi"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if sessionID != id {
		t.Errorf("Send() targeted %q, want active session %q", sessionID, id)
	}
	if len(st.Sessions()) != 1 {
		t.Errorf("got %d sessions, want 1", len(st.Sessions()))
	}
}

func TestSendAttachmentEncodeFailureLeavesStoreUntouched(t *testing.T) {
	st := newTestStore(t)
	c := New(st, &fakeProvider{fragments: []string{"ok"}})

	missing := filepath.Join(t.TempDir(), "no-such-file.pdf")
	_, err := c.Send(context.Background(), SendRequest{Text: "analyze this", AttachmentPath: missing})
	if err == nil {
		t.Fatal("Send() with unreadable attachment returned nil error")
	}
	if len(st.Sessions()) != 0 {
		t.Error("failed attachment encode still created a session")
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %v, want StateIdle", c.State())
	}
	if c.Busy() {
		t.Error("coordinator still busy after aborted send")
	}
}

func TestMidStreamLanguageSwitchLeavesStaleEntry(t *testing.T) {
	st := newTestStore(t)
	tr, _ := i18n.ByCode("tr")
	provider := &fakeProvider{fragments: []string{"Hel", "lo"}}
	provider.between = func() {
		// Switch language after the first fragment only.
		if st.Language().Code == "en" {
			st.SetLanguage(tr)
		}
	}
	c := New(st, provider)

	sessionID, err := c.Send(context.Background(), SendRequest{Text: "hi"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	msgs := st.Messages(sessionID)
	reply := msgs[len(msgs)-1]
	if reply.Text != "Hello" {
		t.Fatalf("reply text = %q, want %q", reply.Text, "Hello")
	}
	// The English entry keeps the prefix cached before the switch; the new
	// language holds the full text. A later translation pass repairs "en".
	if got := reply.Translations["en"]; got != "Hel" {
		t.Errorf("stale entry = %q, want %q", got, "Hel")
	}
	if got := reply.Translations["tr"]; got != "Hello" {
		t.Errorf("active-language entry = %q, want %q", got, "Hello")
	}
}
