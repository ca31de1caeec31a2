// Package tui is the interactive chat interface: a session sidebar, the
// conversation pane, and a multi-line input. All state lives in the
// session store; the TUI repaints off store events and never caches
// messages of its own.
package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/neilberkman/biodish/internal/core/chat"
	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/identity"
	"github.com/neilberkman/biodish/internal/core/store"
	"github.com/neilberkman/biodish/internal/core/translate"
)

const (
	sidebarWidth = 32
	inputHeight  = 3
)

// Deps wires the TUI to the application core.
type Deps struct {
	Store        *store.SessionStore
	Coordinator  *chat.Coordinator
	Synchronizer *translate.Synchronizer
	Identity     identity.Provider
	SendTimeout  time.Duration
}

type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

type Model struct {
	deps   Deps
	events <-chan store.Event

	list     list.Model
	viewport viewport.Model
	input    textarea.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	focus      focusArea
	width      int
	height     int
	ready      bool
	status     string
	suggestion i18n.Suggestion
}

func New(deps Deps) Model {
	lang := deps.Store.Language()
	str := i18n.T(lang.Code)

	ta := textarea.New()
	ta.Placeholder = str.InputPlaceholder
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		deps:       deps,
		events:     deps.Store.Subscribe(),
		input:      ta,
		spin:       sp,
		suggestion: i18n.RandomSuggestion(lang.Code),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), m.spin.Tick, textarea.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chatWidth := m.width - sidebarWidth - 1
		chatHeight := m.height - inputHeight - 3

		m.renderer = newMarkdownRenderer(chatWidth - 2)
		m.input.SetWidth(chatWidth)
		if !m.ready {
			m.list = createSessionList(m.deps.Store.Sessions(), sidebarWidth, m.height-1)
			m.viewport = viewport.New(chatWidth, chatHeight)
			m.ready = true
		} else {
			m.list.SetSize(sidebarWidth, m.height-1)
			m.viewport.Width = chatWidth
			m.viewport.Height = chatHeight
		}
		m.refreshSessions()
		m.repaint()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case storeEventMsg:
		if msg.event.Kind == store.EventLanguageChanged {
			m.onLanguageChange()
		}
		m.refreshSessions()
		m.repaint()
		return m, waitForEvent(m.events)

	case sendDoneMsg:
		switch {
		case errors.Is(msg.err, chat.ErrBusy):
			m.status = "A reply is already in progress"
		case msg.err != nil:
			m.status = msg.err.Error()
		default:
			m.status = ""
		}
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		if m.focus == focusInput {
			m.focus = focusSidebar
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case "ctrl+n":
		m.deps.Store.SelectSession("")
		m.focus = focusInput
		m.input.Focus()
		return m, nil

	case "ctrl+l":
		m.deps.Store.SetLanguage(i18n.Next(m.deps.Store.Language()))
		return m, nil

	case "ctrl+y":
		if reply, ok := m.lastReply(); ok {
			return m, copyToClipboard(reply)
		}
		return m, nil

	case "ctrl+d":
		if id := m.selectedSessionID(); id != "" {
			m.deps.Store.DeleteSession(id)
		}
		return m, nil
	}

	if m.focus == focusSidebar {
		if msg.String() == "enter" {
			if item, ok := m.list.SelectedItem().(sessionItem); ok {
				m.deps.Store.SelectSession(item.session.ID)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if msg.String() == "enter" {
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit parses the input box and hands one exchange to the coordinator.
// A "/attach <path>" first line stages a file; the rest is the message.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}
	if m.deps.Coordinator.Busy() {
		m.status = "A reply is already in progress"
		return m, nil
	}

	req := chat.SendRequest{Text: raw}
	if strings.HasPrefix(raw, "/attach ") {
		line, rest, _ := strings.Cut(raw, "\n")
		req.AttachmentPath = strings.TrimSpace(strings.TrimPrefix(line, "/attach "))
		req.Text = strings.TrimSpace(rest)
	}

	m.input.Reset()
	m.status = ""
	return m, sendMessage(m.deps.Coordinator, req, m.deps.SendTimeout)
}

// stagedAttachment returns the path staged by a "/attach <path>" first
// line, or "" when none is staged.
func (m Model) stagedAttachment() string {
	raw := m.input.Value()
	if !strings.HasPrefix(raw, "/attach ") {
		return ""
	}
	line, _, _ := strings.Cut(raw, "\n")
	return strings.TrimSpace(strings.TrimPrefix(line, "/attach "))
}

// selectedSessionID prefers the sidebar cursor, falling back to the active
// session.
func (m Model) selectedSessionID() string {
	if m.focus == focusSidebar {
		if item, ok := m.list.SelectedItem().(sessionItem); ok {
			return item.session.ID
		}
	}
	return m.deps.Store.ActiveSessionID()
}

func (m *Model) onLanguageChange() {
	lang := m.deps.Store.Language()
	str := i18n.T(lang.Code)
	m.input.Placeholder = str.InputPlaceholder
	m.suggestion = i18n.RandomSuggestion(lang.Code)
}

func (m *Model) repaint() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderConversation())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	lang := m.deps.Store.Language()
	str := i18n.T(lang.Code)

	banner := " "
	switch {
	case m.deps.Coordinator.Busy():
		banner = m.spin.View() + " " + str.Role
	case m.deps.Synchronizer.Translating():
		banner = bannerStyle.Render(str.Translating)
	case m.status != "":
		banner = statusStyle.Render(m.status)
	}

	help := statusStyle.Render(
		"enter send • tab focus • ctrl+n " + str.NewChat +
			" • ctrl+d " + str.DeleteChat +
			" • ctrl+l " + lang.Name +
			" • ctrl+y copy • esc quit")

	sections := []string{m.viewport.View(), banner}
	if path := m.stagedAttachment(); path != "" {
		sections = append(sections, attachStyle.Render("📎 "+path))
	}
	sections = append(sections, m.input.View(), help)
	right := lipgloss.JoinVertical(lipgloss.Left, sections...)

	sidebar := m.list.View()
	if len(m.list.Items()) == 0 {
		sidebar = statusStyle.Render(str.NoHistory)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Height(m.height).Width(sidebarWidth).Render(sidebar),
		right,
	)
}
