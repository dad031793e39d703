package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bowerhall/courier/internal/router"
)

func TestTelegramHandleMessageWithoutSender(t *testing.T) {
	var got router.Inbound

	tg := &telegram{}
	tg.SetHandler(func(ctx context.Context, msg router.Inbound) {
		got = msg
	})

	// channel posts carry no From
	tg.handleMessage(context.Background(), &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 42, Type: "channel"},
		Text: "hello",
	})

	if got.ConversationID != "telegram:42" {
		t.Errorf("unexpected conversation id: %s", got.ConversationID)
	}

	if got.Sender != "" {
		t.Errorf("expected empty sender, got '%s'", got.Sender)
	}

	if got.Text != "hello" {
		t.Errorf("unexpected text: %s", got.Text)
	}
}

func TestTelegramHandleMessagePicksCaption(t *testing.T) {
	var got router.Inbound

	tg := &telegram{}
	tg.SetHandler(func(ctx context.Context, msg router.Inbound) {
		got = msg
	})

	tg.handleMessage(context.Background(), &tgbotapi.Message{
		Chat:    &tgbotapi.Chat{ID: 7, Type: "group"},
		From:    &tgbotapi.User{UserName: "someone"},
		Caption: "look at this",
	})

	if got.Text != "look at this" {
		t.Errorf("caption should become the message text, got '%s'", got.Text)
	}

	if !got.Group {
		t.Error("group chat should be flagged as group")
	}

	if got.Sender != "someone" {
		t.Errorf("unexpected sender: %s", got.Sender)
	}
}
