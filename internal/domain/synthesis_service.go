package domain

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

const OutputContentType = "audio/m4a"

type SynthesisService struct {
	tts     ports.TTSProvider
	timeout time.Duration
	log     *zap.Logger
}

func NewSynthesisService(tts ports.TTSProvider, timeout time.Duration, log *zap.Logger) *SynthesisService {
	return &SynthesisService{tts: tts, timeout: timeout, log: log}
}

func (s *SynthesisService) Synthesize(ctx context.Context, reply string) (ports.SynthesizedAudio, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	data, err := s.tts.Synthesize(ctx, reply)
	if err != nil {
		// текст ответа остаётся в логах, пользователь голос не получит
		s.log.Error("[tts] synthesize failed", zap.String("reply", reply), zap.Error(err))
		if isTimeout(err) {
			return ports.SynthesizedAudio{}, newStageError(KindUpstreamTimeout, StageSynthesize, "synthesis timed out", err)
		}
		return ports.SynthesizedAudio{}, newStageError(KindSynthesisFailed, StageSynthesize, "text-to-speech failed", err)
	}
	// 200 с пустым телом — тоже провал
	if len(data) == 0 {
		s.log.Error("[tts] empty audio", zap.String("reply", reply))
		return ports.SynthesizedAudio{}, newStageError(KindSynthesisFailed, StageSynthesize, "empty audio response", nil)
	}

	return ports.SynthesizedAudio{Data: data, ContentType: OutputContentType}, nil
}
