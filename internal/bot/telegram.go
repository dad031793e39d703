package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bowerhall/courier/internal/logger"
	"github.com/bowerhall/courier/internal/router"
)

type telegram struct {
	api     *tgbotapi.BotAPI
	handler Handler
}

func newTelegram(token string) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &telegram{api: api}, nil
}

func (t *telegram) SetHandler(fn Handler) {
	t.handler = fn
}

func (t *telegram) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			t.handleMessage(ctx, update.Message)
		}
	}
}

func (t *telegram) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if t.handler == nil {
		return
	}

	conversationID := fmt.Sprintf("telegram:%d", msg.Chat.ID)
	group := msg.Chat.IsGroup() || msg.Chat.IsSuperGroup()
	text := firstNonEmpty(msg.Text, msg.Caption)

	// From is nil for channel posts
	sender := ""
	if msg.From != nil {
		sender = msg.From.UserName
	}

	var media []router.Media

	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		if data, mediaType, err := t.downloadFile(photo.FileID); err != nil {
			logger.Error("failed to download photo", "error", err)
		} else {
			media = append(media, router.Media{Data: data, ContentType: mediaType})
		}
	} else if msg.Video != nil {
		if data, mediaType, err := t.downloadFile(msg.Video.FileID); err != nil {
			logger.Error("failed to download video", "error", err)
		} else {
			media = append(media, router.Media{Data: data, ContentType: mediaType})
		}
	}

	logger.Info("message received", "conversation", conversationID, "from", sender, "text", truncate(text, 50))

	t.handler(ctx, router.Inbound{
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
		Group:          group,
		Media:          media,
	})
}

func (t *telegram) Deliver(conversationID, text string) error {
	provider, chat := splitConversationID(conversationID)
	if provider != "telegram" {
		return fmt.Errorf("not a telegram conversation: %s", conversationID)
	}

	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return fmt.Errorf("bad telegram chat id %s: %w", chat, err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return err
	}

	logger.Info("reply sent", "conversation", conversationID, "chars", len(text))
	return nil
}

func (t *telegram) downloadFile(fileID string) ([]byte, string, error) {
	file, err := t.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, "", err
	}

	url := file.Link(t.api.Token)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaSize))
	if err != nil {
		return nil, "", err
	}

	return data, http.DetectContentType(data), nil
}
