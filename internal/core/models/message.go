package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Attachment is a transport-ready encoded file attached to a user message.
// Data is base64 with no data-URI header.
type Attachment struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Message is a single entry in a chat session.
//
// Text is the canonical content: for user messages it is the verbatim input
// and never changes; for model messages it grows by concatenation while a
// response streams in. Translations caches display text per language code;
// entries are added, never removed.
type Message struct {
	ID           string            `json:"id"`
	Role         Role              `json:"role"`
	Text         string            `json:"text"`
	Timestamp    time.Time         `json:"timestamp"`
	Attachment   *Attachment       `json:"attachment,omitempty"`
	IsError      bool              `json:"isError,omitempty"`
	Translations map[string]string `json:"translations,omitempty"`
}

// NewUserMessage builds a user message. The input language's translation
// entry is seeded with the verbatim text, so displaying the language the
// user typed in never needs a provider round-trip.
func NewUserMessage(text, langCode string, attachment *Attachment) Message {
	return Message{
		ID:         uuid.NewString(),
		Role:       RoleUser,
		Text:       text,
		Timestamp:  time.Now(),
		Attachment: attachment,
		Translations: map[string]string{
			langCode: text,
		},
	}
}

// NewModelPlaceholder builds the empty assistant message that a streaming
// exchange fills in fragment by fragment.
func NewModelPlaceholder() Message {
	return Message{
		ID:           uuid.NewString(),
		Role:         RoleModel,
		Timestamp:    time.Now(),
		Translations: map[string]string{},
	}
}

// DisplayText returns the cached translation for langCode, falling back to
// the canonical text.
func (m *Message) DisplayText(langCode string) string {
	if t, ok := m.Translations[langCode]; ok && t != "" {
		return t
	}
	return m.Text
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() Message {
	out := *m
	if m.Translations != nil {
		out.Translations = make(map[string]string, len(m.Translations))
		for k, v := range m.Translations {
			out.Translations[k] = v
		}
	}
	if m.Attachment != nil {
		att := *m.Attachment
		out.Attachment = &att
	}
	return out
}
