// Package telegram delivers outbound bot messages.
package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/yukikurage/company-tracker-api/internal/metrics"
	"go.uber.org/zap"
)

// Notifier delivers a text message to a chat.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// BotNotifier sends messages through the Telegram Bot API.
type BotNotifier struct {
	bot *bot.Bot
}

// NewBotNotifier returns a Bot API notifier, or a notifier that only logs
// when token is empty.
func NewBotNotifier(token string, log *zap.Logger) (Notifier, error) {
	if token == "" {
		log.Warn("TELEGRAM_BOT_TOKEN not set; outbound telegram messages will be dropped")
		return &logNotifier{log: log.Named("telegram")}, nil
	}

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &BotNotifier{bot: b}, nil
}

func (n *BotNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	metrics.ObserveTelegramDelivery(err)
	if err != nil {
		return fmt.Errorf("telegram sendMessage to %d: %w", chatID, err)
	}
	return nil
}

type logNotifier struct {
	log *zap.Logger
}

func (n *logNotifier) SendMessage(_ context.Context, chatID int64, text string) error {
	n.log.Info("dropping telegram message", zap.Int64("chat_id", chatID), zap.Int("length", len(text)))
	return nil
}
