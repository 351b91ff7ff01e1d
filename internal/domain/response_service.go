package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

// персона одна на все запросы, вызывающий её не меняет
const SystemInstruction = `You are a Kazakh-speaking voice assistant.
Always respond ONLY in Kazakh language.
Keep answers short, clear, and natural for speech.
Do not use emojis or markdown.
Be helpful, friendly, and conversational.`

const (
	MaxTextLength   = 4000
	Temperature     = 0.7
	MaxOutputTokens = 1024
)

const (
	FallbackNotUnderstood = "Кешіріңіз, мен сіздің сұрағыңызды түсінбедім."
	FallbackTechnical     = "Кешіріңіз, қазір техникалық қиындықтар бар. Кейінірек қайталап көріңіз."
)

type ResponseService struct {
	llm     ports.LLMProvider
	timeout time.Duration
	log     *zap.Logger
}

func NewResponseService(llm ports.LLMProvider, timeout time.Duration, log *zap.Logger) *ResponseService {
	return &ResponseService{llm: llm, timeout: timeout, log: log}
}

// Generate — строгий вариант для голосового пайплайна: пустой ответ или сбой провайдера
// возвращаются как PipelineError.
func (s *ResponseService) Generate(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", newStageError(KindInvalidInput, StageGenerate, "empty prompt", ErrEmptyText)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", newStageError(KindInvalidInput, StageGenerate, "prompt too long", ErrTextTooLong)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.llm.Complete(ctx, ports.CompletionRequest{
		SystemInstruction: SystemInstruction,
		UserText:          text,
		Temperature:       Temperature,
		MaxOutputTokens:   MaxOutputTokens,
	})
	if err != nil {
		s.log.Error("[llm] completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", upstreamError(StageGenerate, "generation failed", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		s.log.Warn("[llm] empty completion", zap.Duration("elapsed", time.Since(start)))
		return "", newStageError(KindEmptyGeneration, StageGenerate, "model returned empty text", nil)
	}
	return reply, nil
}

// Answer — для текстового канала. Никогда не возвращает ошибку:
// вместо неё подставляется одна из заготовленных фраз.
func (s *ResponseService) Answer(ctx context.Context, text string) string {
	reply, err := s.Generate(ctx, text)
	if err != nil {
		return FallbackReply(err)
	}
	return reply
}

// FallbackReply — "не понял" для пустого/непонятного результата, "технические трудности" для остального.
func FallbackReply(err error) string {
	switch KindOf(err) {
	case KindEmptyGeneration, KindInvalidInput:
		return FallbackNotUnderstood
	default:
		return FallbackTechnical
	}
}
