package ports

import (
	"context"
	"time"
)

// Channel — откуда пришёл запрос
type Channel string

const (
	ChannelWeb      Channel = "web"
	ChannelTelegram Channel = "telegram"
)

// Transcript — распознанный текст (kk-KZ)
type Transcript struct {
	Text         string
	Confidence   float64
	LanguageCode string
}

type StageTimings struct {
	Ingest     time.Duration
	Transcribe time.Duration
	Generate   time.Duration
	Synthesize time.Duration
}

// Total — сумма длительностей стадий
func (t StageTimings) Total() time.Duration {
	return t.Ingest + t.Transcribe + t.Generate + t.Synthesize
}

// PipelineResult возвращается только когда все три поля заполнены.
type PipelineResult struct {
	RunID      string
	Format     AudioFormat
	Transcript Transcript
	Reply      string
	Audio      SynthesizedAudio
	Timings    StageTimings
}

// VoicePipeline — то, чем пользуются каналы (web, telegram)
type VoicePipeline interface {
	Run(ctx context.Context, channel Channel, data []byte) (*PipelineResult, error)
	Reply(ctx context.Context, text string) string
}
