package domain

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

const (
	LanguageCode = "kk-KZ"

	// ниже порога только предупреждаем, акцентная речь тоже должна проходить
	lowConfidenceThreshold = 0.5
)

type TranscriptionService struct {
	stt     ports.STTProvider
	timeout time.Duration
	log     *zap.Logger
}

func NewTranscriptionService(stt ports.STTProvider, timeout time.Duration, log *zap.Logger) *TranscriptionService {
	return &TranscriptionService{stt: stt, timeout: timeout, log: log}
}

// Transcribe — одна попытка, без ретраев.
func (s *TranscriptionService) Transcribe(ctx context.Context, audio ports.AudioPayload) (ports.Transcript, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	segments, err := s.stt.Recognize(ctx, ports.RecognizeRequest{
		Audio:                      audio.Data,
		Encoding:                   audio.Format,
		SampleRateHertz:            audio.Format.SampleRateHertz(),
		LanguageCode:               LanguageCode,
		EnableAutomaticPunctuation: true,
	})
	if err != nil {
		s.log.Error("[stt] recognize failed",
			zap.String("encoding", audio.Format.String()),
			zap.Int("bytes", audio.Size()),
			zap.Error(err),
		)
		return ports.Transcript{}, upstreamError(StageTranscribe, "speech recognition failed", err)
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Transcript)
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return ports.Transcript{}, newStageError(KindNoSpeechDetected, StageTranscribe, "no speech detected in audio", nil)
	}

	var confidence float64
	if len(segments) > 0 {
		confidence = segments[0].Confidence
	}
	if confidence < lowConfidenceThreshold {
		s.log.Warn("[stt] low confidence, proceeding",
			zap.Float64("confidence", confidence),
			zap.String("encoding", audio.Format.String()),
		)
	}

	return ports.Transcript{
		Text:         text,
		Confidence:   confidence,
		LanguageCode: LanguageCode,
	}, nil
}
