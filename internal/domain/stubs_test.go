package domain

import (
	"context"
	"sync"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

type stubSTT struct {
	mu       sync.Mutex
	calls    int
	lastReq  ports.RecognizeRequest
	segments []ports.RecognitionSegment
	err      error
}

func (s *stubSTT) Recognize(ctx context.Context, req ports.RecognizeRequest) ([]ports.RecognitionSegment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastReq = req
	return s.segments, s.err
}

func (s *stubSTT) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubLLM struct {
	mu      sync.Mutex
	calls   int
	lastReq ports.CompletionRequest
	reply   string
	err     error
	block   bool
}

func (s *stubLLM) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	s.mu.Lock()
	s.calls++
	s.lastReq = req
	block := s.block
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func (s *stubLLM) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubTTS struct {
	mu    sync.Mutex
	calls int
	text  string
	audio []byte
	err   error
}

func (s *stubTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.text = text
	return s.audio, s.err
}

func (s *stubTTS) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubRecorder struct {
	mu      sync.Mutex
	records []ports.RunRecord
	err     error
}

func (s *stubRecorder) Record(ctx context.Context, rec ports.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return s.err
}

// webmAudio — буфер с сигнатурой WebM заданного размера
func webmAudio(size int) []byte {
	b := make([]byte, size)
	copy(b, []byte{0x1A, 0x45, 0xDF, 0xA3})
	return b
}
