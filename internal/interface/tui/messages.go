package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/biodish/internal/core/chat"
	"github.com/neilberkman/biodish/internal/core/store"
)

type storeEventMsg struct {
	event store.Event
}

type sendDoneMsg struct {
	sessionID string
	err       error
}

type statusMsg struct {
	text string
}

// waitForEvent blocks on the store's event channel and delivers the next
// change. The Update loop re-issues it after every storeEventMsg, so the
// bridge stays alive for the program's whole run.
func waitForEvent(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg{event: ev}
	}
}

// sendMessage runs one exchange on its own goroutine; the coordinator
// streams into the store, and the event bridge repaints as fragments land.
func sendMessage(coordinator *chat.Coordinator, req chat.SendRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		sessionID, err := coordinator.Send(ctx, req)
		return sendDoneMsg{sessionID: sessionID, err: err}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: "Clipboard unavailable: " + err.Error()}
		}
		return statusMsg{text: "Reply copied to clipboard"}
	}
}
