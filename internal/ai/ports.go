package ai

import "github.com/Vovarama1992/kz_voice/internal/ports"

var (
	_ ports.STTProvider = (*GoogleSTTClient)(nil)
	_ ports.LLMProvider = (*GeminiClient)(nil)
	_ ports.LLMProvider = (*OpenAIClient)(nil)
)
