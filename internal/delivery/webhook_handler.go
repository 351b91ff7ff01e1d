package delivery

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const telegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler — обработчик апдейтов бота (telegram.Router)
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update) error
}

type WebhookHandler struct {
	bot    UpdateHandler
	secret string
	log    *logger.ZapLogger
}

// NewWebhookHandler: bot == nil означает, что бот выключен (нет токена).
func NewWebhookHandler(bot UpdateHandler, secret string, log *logger.ZapLogger) *WebhookHandler {
	return &WebhookHandler{bot: bot, secret: secret, log: log}
}

// Telegram — POST /api/telegram-webhook
func (h *WebhookHandler) Telegram(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		got := r.Header.Get(telegramSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			h.log.Log(logger.LogEntry{Level: "warn", Message: "[webhook] bad secret token"})
			writeError(w, http.StatusForbidden, "Forbidden", "")
			return
		}
	}

	if h.bot == nil {
		writeError(w, http.StatusServiceUnavailable, "Telegram bot is not configured", "")
		return
	}

	var upd tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "[webhook] decode update", Error: err})
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	if err := h.bot.HandleUpdate(r.Context(), upd); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "[webhook] handle update", Error: err})
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
