package ports

import "context"

// === STT ===

type RecognizeRequest struct {
	Audio                      []byte
	Encoding                   AudioFormat
	SampleRateHertz            int
	LanguageCode               string
	EnableAutomaticPunctuation bool
}

// RecognitionSegment — первая альтернатива одного результата провайдера
type RecognitionSegment struct {
	Transcript string
	Confidence float64
}

type STTProvider interface {
	Recognize(ctx context.Context, req RecognizeRequest) ([]RecognitionSegment, error)
}

// === LLM ===

type CompletionRequest struct {
	SystemInstruction string
	UserText          string
	Temperature       float32
	MaxOutputTokens   int
}

type LLMProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// === TTS ===

type TTSProvider interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
