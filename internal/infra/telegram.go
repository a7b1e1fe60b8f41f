package infra

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// TelegramNotifier delivers admin alerts to a fixed set of chat ids. All
// sends go through a circuit breaker so a Telegram outage cannot pile up
// worker goroutines; dropped messages are logged and not retried.
type TelegramNotifier struct {
	api     *tgbotapi.BotAPI
	chatIDs []int64
	cb      *CircuitBreaker
}

// NewTelegramNotifier connects to the Bot API. Token may be empty in
// development; the notifier then drops every message silently.
func NewTelegramNotifier(token string, chatIDs []int64) (*TelegramNotifier, error) {
	n := &TelegramNotifier{
		chatIDs: chatIDs,
		cb:      NewCircuitBreaker(DefaultCBConfig()),
	}
	if token == "" {
		return n, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	n.api = api
	return n, nil
}

// API exposes the underlying client for the interactive bot loop.
func (n *TelegramNotifier) API() *tgbotapi.BotAPI { return n.api }

// NotifyAdmins sends text to every configured admin chat. Best-effort: a
// failed send is logged, never returned as a hard failure to callers that
// fire and forget.
func (n *TelegramNotifier) NotifyAdmins(_ context.Context, text string) error {
	if n.api == nil || len(n.chatIDs) == 0 {
		return nil
	}
	var lastErr error
	for _, chatID := range n.chatIDs {
		err := n.cb.Execute(func() error {
			_, err := n.api.Send(tgbotapi.NewMessage(chatID, text))
			return err
		})
		if err != nil {
			log.Warn().Int64("chat_id", chatID).Err(err).Msg("admin notification dropped")
			lastErr = err
		}
	}
	return lastErr
}
