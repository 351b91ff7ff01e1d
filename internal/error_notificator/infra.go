package error_notificator

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// максимальная длина сообщения в Telegram
const maxMessageLen = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Infra struct {
	mu       sync.RWMutex
	bot      sender
	adminIDs []int64
	log      *zap.Logger
}

func NewInfra(bot sender, adminIDs []int64, log *zap.Logger) *Infra {
	return &Infra{bot: bot, adminIDs: adminIDs, log: log}
}

// SetBot — позволяет передать бота ПОСЛЕ того, как он инициализировался
func (i *Infra) SetBot(bot sender) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.bot = bot
}

func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	i.mu.RLock()
	bot := i.bot
	i.mu.RUnlock()

	if bot == nil || len(i.adminIDs) == 0 {
		i.log.Warn("[error_notificator] no bot or admins, alert logged only",
			zap.String("details", details), zap.Error(err))
		return nil
	}

	text := fmt.Sprintf("❗ Ошибка в пайплайне\n\nОшибка: %v\n\nДетали: %s", err, details)
	if r := []rune(text); len(r) > maxMessageLen {
		text = string(r[:maxMessageLen])
	}

	var firstErr error
	for _, chatID := range i.adminIDs {
		if _, sendErr := bot.Send(tgbotapi.NewMessage(chatID, text)); sendErr != nil {
			i.log.Error("[error_notificator] send fail", zap.Int64("chat_id", chatID), zap.Error(sendErr))
			if firstErr == nil {
				firstErr = sendErr
			}
		}
	}
	return firstErr
}
