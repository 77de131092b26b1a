package error_notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/memo_coach/internal/ai"
)

// Infra sends alerts to one admin chat through a Telegram bot.
type Infra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewInfra(token string, chatID int64) (*Infra, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Infra{bot: bot, chatID: chatID}, nil
}

func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	msg := tgbotapi.NewMessage(i.chatID, formatAlert(err, details))

	if _, sendErr := i.bot.Send(msg); sendErr != nil {
		log.Printf("[error_notificator] send fail: %v", sendErr)
		return sendErr
	}
	return nil
}

// LogInfra is used when no Telegram bot is configured.
type LogInfra struct{}

func (LogInfra) Notify(_ context.Context, err error, details string) error {
	log.Printf("[error_notificator] %s", formatAlert(err, details))
	return nil
}

func formatAlert(err error, details string) string {
	return fmt.Sprintf(
		"❗ memo_coach error\n\nError: %v\nHint: %s\n\nDetails: %s",
		err,
		ai.Diagnose(err),
		details,
	)
}
