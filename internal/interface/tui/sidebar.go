package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"

	"github.com/neilberkman/biodish/internal/core/models"
)

type sessionItem struct {
	session models.ChatSession
}

func (i sessionItem) FilterValue() string { return i.session.Title }

func (i sessionItem) Title() string {
	if i.session.Title != "" {
		return i.session.Title
	}
	return i.session.ID[:8]
}

func (i sessionItem) Description() string {
	return fmt.Sprintf("%d messages | %s",
		len(i.session.Messages), humanize.Time(i.session.LastUpdated))
}

func createSessionList(sessions []models.ChatSession, width, height int) list.Model {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionItem{session: s}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)

	return l
}

// refreshSessions replaces the list contents while keeping the cursor on
// the active session.
func (m *Model) refreshSessions() {
	sessions := m.deps.Store.Sessions()
	items := make([]list.Item, len(sessions))
	cursor := 0
	activeID := m.deps.Store.ActiveSessionID()
	for i, s := range sessions {
		items[i] = sessionItem{session: s}
		if s.ID == activeID {
			cursor = i
		}
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(cursor)
	}
}
