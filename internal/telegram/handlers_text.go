package telegram

import (
	"context"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/domain"
)

func (rt *Router) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if utf8.RuneCountInString(text) > domain.MaxTextLength {
		rt.log.Info("[text] too long", zap.Int64("chat_id", chatID), zap.Int("runes", utf8.RuneCountInString(text)))
		return rt.sendText(chatID, msgTextTooLong)
	}

	rt.chatAction(chatID, tgbotapi.ChatTyping)

	reply := strings.TrimSpace(rt.pipeline.Reply(ctx, text))
	if reply == "" {
		reply = msgEmptyResponse
	}

	rt.log.Info("[text] done", zap.Int64("chat_id", chatID), zap.Int("reply_runes", utf8.RuneCountInString(reply)))
	return rt.sendText(chatID, reply)
}
