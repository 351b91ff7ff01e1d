package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI — часть *tgbotapi.BotAPI, которой пользуется роутер
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Alerter — уведомление операторов (error_notificator.Service)
type Alerter interface {
	NotifyAsync(ctx context.Context, err error, details string)
}

// UpdateHandler обрабатывает один апдейт
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update) error
}

var _ BotAPI = (*tgbotapi.BotAPI)(nil)
