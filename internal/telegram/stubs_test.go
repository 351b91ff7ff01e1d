package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	fileURL  string
	fileErr  error
	sendErr  error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, b.sendErr
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetFileDirectURL(fileID string) (string, error) {
	return b.fileURL, b.fileErr
}

func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (b *fakeBot) voices() []tgbotapi.VoiceConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.VoiceConfig
	for _, c := range b.sent {
		if v, ok := c.(tgbotapi.VoiceConfig); ok {
			out = append(out, v)
		}
	}
	return out
}

func (b *fakeBot) actions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, c := range b.requests {
		if a, ok := c.(tgbotapi.ChatActionConfig); ok {
			out = append(out, a.Action)
		}
	}
	return out
}

type stubPipeline struct {
	mu       sync.Mutex
	runs     int
	lastData []byte
	lastChan ports.Channel
	lastText string
	result   *ports.PipelineResult
	err      error
	reply    string
}

func (s *stubPipeline) Run(ctx context.Context, channel ports.Channel, data []byte) (*ports.PipelineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	s.lastData = data
	s.lastChan = channel
	return s.result, s.err
}

func (s *stubPipeline) Reply(ctx context.Context, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastText = text
	return s.reply
}

func (s *stubPipeline) RunCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

type stubAlerter struct {
	mu    sync.Mutex
	count int
}

func (s *stubAlerter) NotifyAsync(ctx context.Context, err error, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
}

func (s *stubAlerter) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
