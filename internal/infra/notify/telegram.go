// Package notify pushes short run summaries to the operator's Telegram chat.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram connects to the Bot API. endpoint is optional and follows
// tgbotapi.APIEndpoint's format.
func NewTelegram(token string, chatID int64, endpoint string) (*Telegram, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Notify(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
