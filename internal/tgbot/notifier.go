package tgbot

import (
	"context"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier posts plain-text messages to a single operator chat.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func New(token string, chatID int64) (*Notifier, error) {
	return NewWithEndpoint(token, tgbotapi.APIEndpoint, chatID, &http.Client{})
}

// NewWithEndpoint talks to a custom Bot API server. endpoint is a format
// string taking the token and the method name, like tgbotapi.APIEndpoint.
func NewWithEndpoint(token, endpoint string, chatID int64, client tgbotapi.HTTPClient) (*Notifier, error) {
	b, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &Notifier{bot: b, chatID: chatID}, nil
}

func (n *Notifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true
	_, err := n.bot.Send(msg)
	return err
}
