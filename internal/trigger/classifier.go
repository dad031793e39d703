package trigger

import (
	"regexp"
	"strings"
)

// mentionPattern matches an @-mention token (a run of non-whitespace after @).
var mentionPattern = regexp.MustCompile(`@\S+`)

// Config holds the aliases and command prefixes that trigger the bot.
type Config struct {
	NameAliases     []string // e.g. "ai response"
	IDAliases       []string // numeric ids the bot is reachable under
	CommandPrefixes []string // e.g. "/bot"
}

// Result is the outcome of classifying one inbound message. When Admitted is
// false the message produces no query and no reply.
type Result struct {
	Admitted bool
	Text     string
}

type Classifier struct {
	mentions []string // lower-cased "@alias" forms for matching
	prefixes []string
}

func New(cfg Config) *Classifier {
	c := &Classifier{}

	for _, alias := range cfg.NameAliases {
		alias = strings.TrimSpace(alias)
		if alias != "" {
			c.mentions = append(c.mentions, "@"+strings.ToLower(alias))
		}
	}

	for _, alias := range cfg.IDAliases {
		alias = strings.TrimSpace(alias)
		if alias != "" {
			c.mentions = append(c.mentions, "@"+strings.ToLower(alias))
		}
	}

	for _, prefix := range cfg.CommandPrefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" {
			c.prefixes = append(c.prefixes, prefix)
		}
	}

	return c
}

// Classify decides whether a message warrants a backend query. Direct chats
// are always admitted; group chats only when the bot is mentioned or a
// command prefix is used. The returned text has mentions and the leading
// command prefix stripped, preserving the original case of what remains.
func (c *Classifier) Classify(text string, group bool) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	if group && !c.triggered(strings.ToLower(text)) {
		return Result{}
	}

	clean := c.clean(text)
	if clean == "" {
		return Result{}
	}

	return Result{Admitted: true, Text: clean}
}

func (c *Classifier) triggered(lower string) bool {
	for _, mention := range c.mentions {
		if strings.Contains(lower, mention) {
			return true
		}
	}

	for _, prefix := range c.prefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}

	return false
}

func (c *Classifier) clean(text string) string {
	// configured aliases first: a multi-word alias like "ai response" must
	// disappear whole, not leave its tail words behind
	for _, mention := range c.mentions {
		text = removeFold(text, mention)
	}

	text = mentionPattern.ReplaceAllString(text, "")

	for _, prefix := range c.prefixes {
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = text[len(prefix):]
		}
	}

	return strings.TrimSpace(text)
}

// removeFold removes every case-insensitive occurrence of sub from s.
func removeFold(s, sub string) string {
	if sub == "" {
		return s
	}

	lower := strings.ToLower(s)
	sub = strings.ToLower(sub)

	var b strings.Builder
	for {
		i := strings.Index(lower, sub)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i+len(sub):]
		lower = lower[i+len(sub):]
	}
}
