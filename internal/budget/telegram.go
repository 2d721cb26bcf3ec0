package budget

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"gitlab.com/budgetku/budget-tracker/internal/logger"
)

// TelegramNotifier delivers budget alerts as Telegram messages to a fixed
// chat. Failures are logged and otherwise swallowed.
type TelegramNotifier struct {
	bot    *tgbot.Bot
	chatID int64
}

var _ Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	b, err := tgbot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: b, chatID: chatID}, nil
}

// Show implements Notifier.
func (n *TelegramNotifier) Show(ctx context.Context, title, message string) {
	_, err := n.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: n.chatID,
		Text:   fmt.Sprintf("%s\n\n%s", title, message),
	})
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to deliver telegram alert")
	}
}
