package models

import (
	"strings"
	"testing"
)

func TestTitleFrom(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text kept whole",
			text: "What should I eat?",
			want: "What should I eat?",
		},
		{
			name: "long text truncated to limit",
			text: strings.Repeat("a", 100),
			want: strings.Repeat("a", TitleLimit),
		},
		{
			name: "multibyte text counts runes not bytes",
			text: strings.Repeat("ş", 100),
			want: strings.Repeat("ş", TitleLimit),
		},
		{
			name: "exactly at limit",
			text: strings.Repeat("x", TitleLimit),
			want: strings.Repeat("x", TitleLimit),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFrom(tt.text); got != tt.want {
				t.Errorf("TitleFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionValidate(t *testing.T) {
	sess := NewChatSession("New Chat")
	if err := sess.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	sess.Title = ""
	if err := sess.Validate(); err == nil {
		t.Error("Validate() expected error for missing title")
	}

	sess = ChatSession{Title: "x"}
	if err := sess.Validate(); err == nil {
		t.Error("Validate() expected error for missing id")
	}
}

func TestSessionCloneIsDeep(t *testing.T) {
	sess := NewChatSession("New Chat")
	sess.Messages = append(sess.Messages, NewUserMessage("hello", "en", nil))

	clone := sess.Clone()
	clone.Messages[0].Text = "mutated"
	clone.Messages[0].Translations["tr"] = "merhaba"

	if sess.Messages[0].Text != "hello" {
		t.Errorf("clone mutation leaked into original text: %q", sess.Messages[0].Text)
	}
	if _, ok := sess.Messages[0].Translations["tr"]; ok {
		t.Error("clone mutation leaked into original translations")
	}
}
