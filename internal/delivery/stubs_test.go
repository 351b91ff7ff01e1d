package delivery

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

type stubPipeline struct {
	mu       sync.Mutex
	calls    int
	lastData []byte
	result   *ports.PipelineResult
	err      error
}

func (s *stubPipeline) Run(ctx context.Context, channel ports.Channel, data []byte) (*ports.PipelineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastData = data
	return s.result, s.err
}

func (s *stubPipeline) Reply(ctx context.Context, text string) string {
	return "жауап"
}

func (s *stubPipeline) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubAlerter struct {
	mu   sync.Mutex
	errs []error
}

func (s *stubAlerter) NotifyAsync(ctx context.Context, err error, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *stubAlerter) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errs)
}

type stubUpdates struct {
	mu      sync.Mutex
	updates []tgbotapi.Update
	err     error
}

func (s *stubUpdates) HandleUpdate(ctx context.Context, upd tgbotapi.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, upd)
	return s.err
}

var errBoom = errors.New("boom")

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

type routerFixture struct {
	pipeline *stubPipeline
	alerter  *stubAlerter
	updates  *stubUpdates
	handler  http.Handler
}

func newFixture(t *testing.T, limit RateLimit, secret string) *routerFixture {
	t.Helper()
	f := &routerFixture{
		pipeline: &stubPipeline{},
		alerter:  &stubAlerter{},
		updates:  &stubUpdates{},
	}
	log := nopLogger()
	f.handler = NewRouter(
		[]string{"http://localhost:5173"},
		NewVoiceHandler(f.pipeline, f.alerter, log),
		NewHealthHandler(),
		NewWebhookHandler(f.updates, secret, log),
		limit,
	)
	return f
}

func audioUpload(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "recording.webm")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/voice-chat", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
