package bot

import (
	"context"

	"github.com/bowerhall/courier/internal/router"
)

// Handler receives each inbound message extracted by a transport adapter.
type Handler func(ctx context.Context, msg router.Inbound)

// Bot is a messaging transport adapter. It pushes inbound messages to the
// handler and delivers replies addressed by conversation id.
type Bot interface {
	Start(ctx context.Context) error
	SetHandler(fn Handler)
	Deliver(conversationID, text string) error
}

type Config struct {
	Provider          string
	Token             string
	OwnerConversation string // where operator reports go, e.g. "telegram:12345"
}
