// Package bot is the read-only Telegram front end: balances, ledger pages,
// debtor and bonus lookups. It never mutates state; all writes go through
// the HTTP API.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/service"
)

const txPageSize = 10

type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *SessionStore
	cashbox  service.CashboxService
	clients  service.ClientService
}

func New(api *tgbotapi.BotAPI, cashbox service.CashboxService, clients service.ClientService) *Bot {
	return &Bot{
		api:      api,
		sessions: NewSessionStore(),
		cashbox:  cashbox,
		clients:  clients,
	}
}

// Run consumes updates until ctx is cancelled. Call in its own goroutine.
func (b *Bot) Run(ctx context.Context) {
	if b.api == nil {
		log.Info().Msg("telegram bot disabled (no token)")
		return
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)
	log.Info().Str("username", b.api.Self.UserName).Msg("telegram bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		b.sessions.Reset(chatID)
		b.send(chatID, "Commands:\n/balance — cashbox balances\n/transactions — ledger\n/debtors — outstanding debts\n/bonus <phone> — client bonus")
	case "balance":
		b.sendBalance(ctx, chatID)
	case "transactions":
		b.sessions.Get(chatID).TxPage = 1
		b.sendTransactions(ctx, chatID, 1)
	case "debtors":
		b.sendDebtors(ctx, chatID)
	case "bonus":
		b.sendBonus(ctx, chatID, strings.TrimSpace(msg.CommandArguments()))
	default:
		b.send(chatID, "Unknown command. Try /start.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess := b.sessions.Get(chatID)

	switch cb.Data {
	case "tx:next":
		sess.TxPage++
	case "tx:prev":
		if sess.TxPage > 1 {
			sess.TxPage--
		}
	default:
		return
	}
	b.sendTransactions(ctx, chatID, sess.TxPage)
	_, _ = b.api.Request(tgbotapi.NewCallback(cb.ID, ""))
}

func (b *Bot) sendBalance(ctx context.Context, chatID int64) {
	box, err := b.cashbox.Get(ctx)
	if err != nil {
		b.send(chatID, "Could not load the cashbox.")
		return
	}
	b.send(chatID, fmt.Sprintf(
		"💰 Cashbox\nCash: %s\nCard: %s\nBank: %s",
		box.CashBalance, box.CardBalance, box.BankBalance,
	))
}

func (b *Bot) sendTransactions(ctx context.Context, chatID int64, page int) {
	resp, err := b.cashbox.ListTransactions(ctx, page, txPageSize)
	if err != nil {
		b.send(chatID, "Could not load transactions.")
		return
	}
	if len(resp.Data) == 0 {
		b.send(chatID, "No transactions on this page.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📒 Transactions — page %d/%d\n\n", resp.Page, resp.TotalPages)
	for _, t := range resp.Data {
		sign := "+"
		if t.Type == "expense" {
			sign = "-"
		}
		fmt.Fprintf(&sb, "%s%s %s (%s)\n%s\n\n",
			sign, t.Amount, t.PaymentMethod, t.Date.Format("2006-01-02 15:04"), t.Description)
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	var row []tgbotapi.InlineKeyboardButton
	if resp.Page > 1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Prev", "tx:prev"))
	}
	if resp.Page < resp.TotalPages {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", "tx:next"))
	}
	if len(row) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("bot send failed")
	}
}

func (b *Bot) sendDebtors(ctx context.Context, chatID int64) {
	debtors, err := b.clients.Debtors(ctx)
	if err != nil {
		b.send(chatID, "Could not load debtors.")
		return
	}
	if len(debtors) == 0 {
		b.send(chatID, "Nobody owes anything 🎉")
		return
	}
	var sb strings.Builder
	sb.WriteString("📋 Debtors\n\n")
	for _, d := range debtors {
		fmt.Fprintf(&sb, "%s — %s\n", d.Firstname, d.TotalDebt)
	}
	b.send(chatID, sb.String())
}

func (b *Bot) sendBonus(ctx context.Context, chatID int64, phone string) {
	if phone == "" {
		b.send(chatID, "Usage: /bonus <phone>")
		return
	}
	client, err := b.clients.GetByPhone(ctx, phone)
	if err != nil {
		b.send(chatID, "No client with that phone number.")
		return
	}
	b.send(chatID, fmt.Sprintf("%s\nBonus: %s\nOutstanding debt: %s", client.Firstname, client.Bonus.StringFixed(2), client.TotalDebt().StringFixed(2)))
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("bot send failed")
	}
}
