package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/models"
)

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderConversation builds the viewport content for the active session in
// the active display language. Assistant replies are Markdown and go
// through glamour; user messages render verbatim.
func (m *Model) renderConversation() string {
	lang := m.deps.Store.Language()
	str := i18n.T(lang.Code)
	msgs := m.deps.Store.ActiveMessages()
	if len(msgs) == 0 {
		return m.renderWelcome(lang.Code, str)
	}

	var b strings.Builder
	for _, msg := range msgs {
		var label string
		switch {
		case msg.IsError:
			label = errorStyle.Render("▸ " + str.ErrorTitle)
		case msg.Role == models.RoleUser:
			label = userStyle.Render("▸ " + str.You)
		default:
			label = assistantStyle.Render("▸ BioDish")
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(timestampStyle.Render(humanize.Time(msg.Timestamp)))
		b.WriteString("\n")

		if msg.Attachment != nil {
			b.WriteString(attachStyle.Render(fmt.Sprintf("📎 %s", msg.Attachment.MimeType)))
			b.WriteString("\n")
		}

		text := msg.DisplayText(lang.Code)
		if msg.Role == models.RoleModel && !msg.IsError && m.renderer != nil {
			if out, err := m.renderer.Render(text); err == nil {
				text = strings.TrimRight(out, "\n")
			}
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m *Model) renderWelcome(langCode string, str i18n.Strings) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(str.WelcomeTitle))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(str.Role))
	if who := m.deps.Identity.Current(); who != nil {
		b.WriteString(statusStyle.Render(" · " + who.Name))
	}
	b.WriteString("\n\n")
	b.WriteString(str.WelcomeDesc)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %q\n\n", str.InputPlaceholder, m.suggestion.Prompt))
	b.WriteString(disclaimerStyle.Render(str.DisclaimerLabel + " " + str.DisclaimerText))
	b.WriteString("\n")
	return b.String()
}

// lastReply returns the newest completed assistant message in the active
// display language, for the clipboard shortcut.
func (m *Model) lastReply() (string, bool) {
	lang := m.deps.Store.Language()
	msgs := m.deps.Store.ActiveMessages()
	for i := len(msgs) - 1; i >= 0; i-- {
		msg := msgs[i]
		if msg.Role == models.RoleModel && !msg.IsError && msg.Text != "" {
			return msg.DisplayText(lang.Code), true
		}
	}
	return "", false
}
