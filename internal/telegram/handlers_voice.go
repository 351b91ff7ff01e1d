package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/domain"
	"github.com/Vovarama1992/kz_voice/internal/ports"
)

// голосовое или аудиофайл
type attachment struct {
	kind     string
	fileID   string
	fileSize int
	tooLarge string
}

func (rt *Router) handleVoice(ctx context.Context, msg *tgbotapi.Message) error {
	return rt.handleAttachment(ctx, msg, attachment{
		kind:     "voice",
		fileID:   msg.Voice.FileID,
		fileSize: msg.Voice.FileSize,
		tooLarge: msgVoiceTooLarge,
	})
}

func (rt *Router) handleAudio(ctx context.Context, msg *tgbotapi.Message) error {
	return rt.handleAttachment(ctx, msg, attachment{
		kind:     "audio",
		fileID:   msg.Audio.FileID,
		fileSize: msg.Audio.FileSize,
		tooLarge: msgAudioTooLarge,
	})
}

func (rt *Router) handleAttachment(ctx context.Context, msg *tgbotapi.Message, a attachment) error {
	chatID := msg.Chat.ID
	if a.fileID == "" {
		return nil
	}

	log := rt.log.With(zap.String("kind", a.kind), zap.Int64("chat_id", chatID))
	log.Info("[voice] start", zap.Int("declared_size", a.fileSize))

	rt.chatAction(chatID, tgbotapi.ChatRecordVoice)

	// размер известен заранее, не качаем
	if a.fileSize > domain.MaxAudioSize {
		log.Info("[voice] too large, skip download")
		return rt.sendText(chatID, a.tooLarge)
	}

	data, err := rt.download(ctx, a.fileID)
	if err != nil {
		log.Error("[voice] download failed", zap.Error(err))
		rt.alert(ctx, err, fmt.Sprintf("канал: telegram (%s), стадия: %s", a.kind, domain.StageDownload))
		return rt.sendText(chatID, msgErrorVoice)
	}

	res, err := rt.pipeline.Run(ctx, ports.ChannelTelegram, data)
	if err != nil {
		return rt.replyPipelineError(ctx, log, chatID, a, err)
	}

	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: replyVoiceName, Bytes: res.Audio.Data})
	if _, err := rt.bot.Send(voice); err != nil {
		log.Error("[voice] send reply failed", zap.String("run_id", res.RunID), zap.Error(err))
		return rt.sendText(chatID, msgErrorVoice)
	}

	log.Info("[voice] done",
		zap.String("run_id", res.RunID),
		zap.Duration("total", res.Timings.Total()),
	)
	return nil
}

func (rt *Router) replyPipelineError(ctx context.Context, log *zap.Logger, chatID int64, a attachment, err error) error {
	log.Warn("[voice] pipeline failed",
		zap.String("error_kind", string(domain.KindOf(err))),
		zap.String("stage", string(domain.StageOf(err))),
		zap.Error(err),
	)

	if domain.IsUpstream(err) {
		rt.alert(ctx, err, fmt.Sprintf("канал: telegram (%s), стадия: %s", a.kind, domain.StageOf(err)))
	}

	return rt.sendText(chatID, pipelineErrorText(a, err))
}

// pipelineErrorText выбирает текст для пользователя по виду ошибки.
func pipelineErrorText(a attachment, err error) string {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		switch {
		case errors.Is(err, domain.ErrAudioTooLarge):
			return a.tooLarge
		case errors.Is(err, domain.ErrTextTooLong):
			return msgTranscriptTooLong
		}
		return msgErrorVoice
	case domain.KindNoSpeechDetected:
		return msgErrorNoSpeech
	case domain.KindEmptyGeneration:
		return domain.FallbackNotUnderstood
	case domain.KindSynthesisFailed:
		return msgErrorGeneric
	default:
		return msgErrorVoice
	}
}
