package backend

import "context"

// Backend answers a single cleaned query. The group flag lets providers pick
// a different system prompt for group chats.
type Backend interface {
	Ask(ctx context.Context, query string, group bool) (string, error)
}

type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Prompt      string // system prompt for direct chats
	GroupPrompt string // system prompt for group chats (falls back to Prompt)
}

// prompts holds the resolved system prompts shared by all providers.
type prompts struct {
	direct string
	group  string
}

func newPrompts(cfg Config) prompts {
	p := prompts{direct: cfg.Prompt, group: cfg.GroupPrompt}
	if p.group == "" {
		p.group = p.direct
	}
	return p
}

func (p prompts) pick(group bool) string {
	if group {
		return p.group
	}
	return p.direct
}
