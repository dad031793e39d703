package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxRetries = 3
const baseDelay = 2 * time.Second

type claude struct {
	client  anthropic.Client
	model   string
	prompts prompts
}

func newClaude(cfg Config) Backend {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	return &claude{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   model,
		prompts: newPrompts(cfg),
	}
}

func (c *claude) Ask(ctx context.Context, query string, group bool) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
		},
	}

	if system := c.prompts.pick(group); system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	var resp *anthropic.Message
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err = c.client.Messages.New(ctx, params)
		if err == nil {
			break
		}
		if !isRetryableError(err) {
			return "", err
		}
		if attempt < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<attempt)
			if err := sleepContext(ctx, delay); err != nil {
				return "", err
			}
		}
	}
	if err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("no text content in response")
}

// sleepContext waits out the backoff delay but returns early if the caller's
// context is cancelled, so a timed-out call doesn't stall its conversation.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func isRetryableError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "529") ||
		strings.Contains(errStr, "overloaded") ||
		strings.Contains(errStr, "Overloaded") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "502")
}
