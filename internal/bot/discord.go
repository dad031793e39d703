package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/bowerhall/courier/internal/logger"
	"github.com/bowerhall/courier/internal/router"
)

type discord struct {
	session *discordgo.Session
	handler Handler
	ctx     context.Context
}

func newDiscord(token string) (Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	d := &discord{session: session}
	session.AddHandler(d.handleMessage)

	return d, nil
}

func (d *discord) SetHandler(fn Handler) {
	d.handler = fn
}

func (d *discord) Start(ctx context.Context) error {
	d.ctx = ctx

	if err := d.session.Open(); err != nil {
		return err
	}

	<-ctx.Done()
	return d.session.Close()
}

func (d *discord) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	if d.handler == nil {
		return
	}

	conversationID := fmt.Sprintf("discord:%s", m.ChannelID)
	group := m.GuildID != "" // guild channels are group chats, DMs have no guild

	logger.Info("message received", "conversation", conversationID, "from", m.Author.Username, "text", truncate(m.Content, 50))

	d.handler(d.ctx, router.Inbound{
		ConversationID: conversationID,
		Sender:         m.Author.Username,
		Text:           m.Content,
		Group:          group,
	})
}

func (d *discord) Deliver(conversationID, text string) error {
	provider, channelID := splitConversationID(conversationID)
	if provider != "discord" {
		return fmt.Errorf("not a discord conversation: %s", conversationID)
	}

	if _, err := d.session.ChannelMessageSend(channelID, text); err != nil {
		return err
	}

	logger.Info("reply sent", "conversation", conversationID, "chars", len(text))
	return nil
}
