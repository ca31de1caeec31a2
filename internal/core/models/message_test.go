package models

import "testing"

func TestNewUserMessageSeedsInputLanguage(t *testing.T) {
	msg := NewUserMessage("Kilo vermek istiyorum", "tr", nil)

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if got := msg.Translations["tr"]; got != "Kilo vermek istiyorum" {
		t.Errorf("input language translation = %q, want the verbatim text", got)
	}
	if msg.ID == "" {
		t.Error("message id is empty")
	}
}

func TestDisplayTextFallsBackToCanonical(t *testing.T) {
	msg := NewUserMessage("hello", "en", nil)

	if got := msg.DisplayText("en"); got != "hello" {
		t.Errorf("DisplayText(en) = %q, want %q", got, "hello")
	}
	// No Turkish entry cached yet: canonical text is shown.
	if got := msg.DisplayText("tr"); got != "hello" {
		t.Errorf("DisplayText(tr) = %q, want fallback %q", got, "hello")
	}

	msg.Translations["tr"] = "merhaba"
	if got := msg.DisplayText("tr"); got != "merhaba" {
		t.Errorf("DisplayText(tr) = %q, want cached %q", got, "merhaba")
	}
}

func TestNewModelPlaceholderIsEmpty(t *testing.T) {
	msg := NewModelPlaceholder()

	if msg.Role != RoleModel {
		t.Errorf("Role = %q, want %q", msg.Role, RoleModel)
	}
	if msg.Text != "" {
		t.Errorf("placeholder text = %q, want empty", msg.Text)
	}
	if msg.Translations == nil {
		t.Error("placeholder translations map is nil")
	}
}
