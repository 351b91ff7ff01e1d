package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// updatesSource — long polling у *tgbotapi.BotAPI
type updatesSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Poller — режим polling: каждый апдейт в своей горутине
type Poller struct {
	bot     updatesSource
	handler UpdateHandler
	log     *zap.Logger
}

func NewPoller(bot updatesSource, handler UpdateHandler, log *zap.Logger) *Poller {
	return &Poller{bot: bot, handler: handler, log: log}
}

// Run блокирует до отмены ctx и ждёт обработчики в полёте.
func (p *Poller) Run(ctx context.Context) error {
	// polling не работает при установленном вебхуке
	if _, err := p.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		p.log.Warn("[bot_loop] delete webhook failed", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := p.bot.GetUpdatesChan(u)
	p.log.Info("[bot_loop] started")

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			p.bot.StopReceivingUpdates()
			p.log.Info("[bot_loop] stopped")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := p.handler.HandleUpdate(ctx, upd); err != nil {
					p.log.Error("[bot_loop] update failed", zap.Int("update_id", upd.UpdateID), zap.Error(err))
				}
			}()
		}
	}
}
