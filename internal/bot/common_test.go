package bot

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "caption"); got != "caption" {
		t.Errorf("expected 'caption', got '%s'", got)
	}

	if got := firstNonEmpty("body", "caption"); got != "body" {
		t.Errorf("expected 'body', got '%s'", got)
	}

	if got := firstNonEmpty("", "   "); got != "" {
		t.Errorf("expected empty, got '%s'", got)
	}
}

func TestSplitConversationID(t *testing.T) {
	provider, chat := splitConversationID("telegram:12345")
	if provider != "telegram" || chat != "12345" {
		t.Errorf("got %s/%s", provider, chat)
	}

	provider, chat = splitConversationID("discord:abc:def")
	if provider != "discord" || chat != "abc:def" {
		t.Errorf("got %s/%s", provider, chat)
	}

	if provider, _ = splitConversationID("garbage"); provider != "" {
		t.Errorf("expected empty provider for malformed id, got '%s'", provider)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(Config{Provider: "smoke-signals"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
