package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "carrier-pigeon"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewKnownProviders(t *testing.T) {
	for _, provider := range []string{"claude", "openai", "ollama", "mistral", "groq", "deepseek"} {
		if _, err := New(Config{Provider: provider, APIKey: "test"}); err != nil {
			t.Errorf("provider %s: %v", provider, err)
		}
	}
}

func TestOpenAICompatibleAsk(t *testing.T) {
	var gotReq openaiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"42"}}]}`))
	}))
	defer server.Close()

	b := newOpenAICompatible(Config{
		APIKey:      "test",
		BaseURL:     server.URL,
		Model:       "test-model",
		Prompt:      "direct prompt",
		GroupPrompt: "group prompt",
	})

	reply, err := b.Ask(context.Background(), "what is the answer", true)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if reply != "42" {
		t.Errorf("expected '42', got '%s'", reply)
	}

	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(gotReq.Messages))
	}

	if gotReq.Messages[0].Content != "group prompt" {
		t.Errorf("group ask should use the group prompt, got '%s'", gotReq.Messages[0].Content)
	}

	if gotReq.Messages[1].Content != "what is the answer" {
		t.Errorf("unexpected user content: '%s'", gotReq.Messages[1].Content)
	}
}

func TestOpenAICompatibleAskAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad request"}}`))
	}))
	defer server.Close()

	b := newOpenAICompatible(Config{BaseURL: server.URL, Model: "test-model"})

	if _, err := b.Ask(context.Background(), "hi", false); err == nil {
		t.Error("expected error from api failure")
	}
}

func TestSleepContextReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := sleepContext(ctx, 5*time.Second)
	if err == nil {
		t.Error("expected context error")
	}

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("sleepContext waited %v on a cancelled context", elapsed)
	}
}

func TestSleepContextWaitsOutDelay(t *testing.T) {
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPromptFallback(t *testing.T) {
	p := newPrompts(Config{Prompt: "only one"})

	if p.pick(true) != "only one" {
		t.Error("group prompt should fall back to the direct prompt")
	}
}
