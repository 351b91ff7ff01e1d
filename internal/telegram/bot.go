package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

type Router struct {
	bot      BotAPI
	pipeline ports.VoicePipeline
	alerter  Alerter
	files    *fileDownloader
	log      *zap.Logger
}

func NewRouter(
	bot BotAPI,
	pipeline ports.VoicePipeline,
	alerter Alerter,
	downloadTimeout time.Duration,
	log *zap.Logger,
) *Router {
	return &Router{
		bot:      bot,
		pipeline: pipeline,
		alerter:  alerter,
		files:    newFileDownloader(&http.Client{}, downloadTimeout),
		log:      log,
	}
}

// HandleUpdate — один апдейт. Ошибка только если пользователю не ушёл даже ответ об ошибке.
func (rt *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) error {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}

	rt.log.Debug("[bot] update",
		zap.Int("update_id", upd.UpdateID),
		zap.Int64("chat_id", msg.Chat.ID),
	)

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		return rt.sendMarkdown(msg.Chat.ID, welcomeText)
	case msg.IsCommand() && msg.Command() == "help":
		return rt.sendMarkdown(msg.Chat.ID, helpText)
	case msg.Voice != nil:
		return rt.handleVoice(ctx, msg)
	case msg.Audio != nil:
		return rt.handleAudio(ctx, msg)
	case msg.Text != "":
		return rt.handleText(ctx, msg)
	}
	return nil
}

func (rt *Router) sendText(chatID int64, text string) error {
	if _, err := rt.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (rt *Router) sendMarkdown(chatID int64, text string) error {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := rt.bot.Send(m); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// ошибка индикатора не важна
func (rt *Router) chatAction(chatID int64, action string) {
	if _, err := rt.bot.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
		rt.log.Debug("[bot] chat action failed", zap.String("action", action), zap.Error(err))
	}
}

func (rt *Router) alert(ctx context.Context, err error, details string) {
	if rt.alerter != nil {
		rt.alerter.NotifyAsync(ctx, err, details)
	}
}
