package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/domain"
	"github.com/Vovarama1992/kz_voice/internal/ports"
)

const chatID = int64(100)

type routerFixture struct {
	bot      *fakeBot
	pipeline *stubPipeline
	alerter  *stubAlerter
	router   *Router
}

func newFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		bot:      &fakeBot{},
		pipeline: &stubPipeline{},
		alerter:  &stubAlerter{},
	}
	f.router = NewRouter(f.bot, f.pipeline, f.alerter, 5*time.Second, zap.NewNop())
	return f
}

func fileServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func commandUpdate(cmd string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 1,
			Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
			Text:      cmd,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
		},
	}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 2,
		Message: &tgbotapi.Message{
			MessageID: 2,
			Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
			Text:      text,
		},
	}
}

func voiceUpdate(size int) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 3,
		Message: &tgbotapi.Message{
			MessageID: 3,
			Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
			Voice:     &tgbotapi.Voice{FileID: "voice-1", Duration: 4, MimeType: "audio/ogg", FileSize: size},
		},
	}
}

func audioUpdate(size int) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 4,
		Message: &tgbotapi.Message{
			MessageID: 4,
			Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
			Audio:     &tgbotapi.Audio{FileID: "audio-1", Duration: 10, MimeType: "audio/mpeg", FileSize: size},
		},
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{"/start", "AI Ғарыш Көмекші"},
		{"/help", "/start"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.router.HandleUpdate(context.Background(), commandUpdate(tt.cmd)))

			require.Len(t, f.bot.sent, 1)
			m := f.bot.sent[0].(tgbotapi.MessageConfig)
			assert.Equal(t, tgbotapi.ModeMarkdown, m.ParseMode)
			assert.Contains(t, m.Text, tt.want)
			assert.Zero(t, f.pipeline.RunCount())
			assert.Empty(t, f.pipeline.lastText)
		})
	}
}

func TestText_Reply(t *testing.T) {
	f := newFixture(t)
	f.pipeline.reply = "Ай — Жердің табиғи серігі."

	require.NoError(t, f.router.HandleUpdate(context.Background(), textUpdate("  Ай деген не?  ")))

	assert.Equal(t, "Ай деген не?", f.pipeline.lastText)
	assert.Equal(t, []string{"Ай — Жердің табиғи серігі."}, f.bot.texts())
	assert.Equal(t, []string{tgbotapi.ChatTyping}, f.bot.actions())
}

func TestText_TooLong(t *testing.T) {
	f := newFixture(t)

	long := strings.Repeat("ә", domain.MaxTextLength+1)
	require.NoError(t, f.router.HandleUpdate(context.Background(), textUpdate(long)))

	assert.Equal(t, []string{msgTextTooLong}, f.bot.texts())
	assert.Empty(t, f.pipeline.lastText)
}

func TestText_MaxLengthAccepted(t *testing.T) {
	f := newFixture(t)
	f.pipeline.reply = "ok"

	exact := strings.Repeat("ә", domain.MaxTextLength)
	require.NoError(t, f.router.HandleUpdate(context.Background(), textUpdate(exact)))

	assert.Equal(t, exact, f.pipeline.lastText)
	assert.Equal(t, []string{"ok"}, f.bot.texts())
}

func TestText_BlankReply(t *testing.T) {
	f := newFixture(t)
	f.pipeline.reply = "  "

	require.NoError(t, f.router.HandleUpdate(context.Background(), textUpdate("сәлем")))
	assert.Equal(t, []string{msgEmptyResponse}, f.bot.texts())
}

func TestIgnoredUpdates(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.router.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 9}))
	require.NoError(t, f.router.HandleUpdate(context.Background(), textUpdate("   ")))

	assert.Empty(t, f.bot.sent)
}

func TestVoice_Success(t *testing.T) {
	f := newFixture(t)
	ogg := []byte("OggS-voice")
	f.bot.fileURL = fileServer(t, ogg).URL + "/file/voice.oga"
	f.pipeline.result = &ports.PipelineResult{
		RunID: "run-1",
		Audio: ports.SynthesizedAudio{Data: []byte("m4a"), ContentType: domain.OutputContentType},
	}

	require.NoError(t, f.router.HandleUpdate(context.Background(), voiceUpdate(len(ogg))))

	assert.Equal(t, ogg, f.pipeline.lastData)
	assert.Equal(t, ports.ChannelTelegram, f.pipeline.lastChan)
	assert.Contains(t, f.bot.actions(), tgbotapi.ChatRecordVoice)

	voices := f.bot.voices()
	require.Len(t, voices, 1)
	assert.Equal(t, chatID, voices[0].ChatID)
	fb, ok := voices[0].File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "reply.m4a", fb.Name)
	assert.Equal(t, []byte("m4a"), fb.Bytes)
	assert.Empty(t, f.bot.texts())
}

func TestAttachment_DeclaredTooLarge(t *testing.T) {
	tests := []struct {
		name string
		upd  tgbotapi.Update
		want string
	}{
		{"voice", voiceUpdate(domain.MaxAudioSize + 1), msgVoiceTooLarge},
		{"audio", audioUpdate(6 * 1024 * 1024), msgAudioTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.bot.fileErr = assert.AnError

			require.NoError(t, f.router.HandleUpdate(context.Background(), tt.upd))

			assert.Equal(t, []string{tt.want}, f.bot.texts())
			assert.Zero(t, f.pipeline.RunCount())
			assert.Zero(t, f.alerter.Count())
		})
	}
}

func TestVoice_DownloadFailure(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	f.bot.fileURL = srv.URL + "/file/missing"

	require.NoError(t, f.router.HandleUpdate(context.Background(), voiceUpdate(100)))

	assert.Equal(t, []string{msgErrorVoice}, f.bot.texts())
	assert.Zero(t, f.pipeline.RunCount())
	assert.Equal(t, 1, f.alerter.Count())
}

func TestVoice_ResolveFailure(t *testing.T) {
	f := newFixture(t)
	f.bot.fileErr = assert.AnError

	require.NoError(t, f.router.HandleUpdate(context.Background(), voiceUpdate(100)))

	assert.Equal(t, []string{msgErrorVoice}, f.bot.texts())
	assert.Zero(t, f.pipeline.RunCount())
}

func TestVoice_PipelineErrors(t *testing.T) {
	tests := []struct {
		name    string
		upd     tgbotapi.Update
		err     error
		want    string
		alerted bool
	}{
		{
			name: "no speech",
			upd:  voiceUpdate(10),
			err:  &domain.PipelineError{Kind: domain.KindNoSpeechDetected, Stage: domain.StageTranscribe},
			want: msgErrorNoSpeech,
		},
		{
			name: "empty generation",
			upd:  voiceUpdate(10),
			err:  &domain.PipelineError{Kind: domain.KindEmptyGeneration, Stage: domain.StageGenerate},
			want: domain.FallbackNotUnderstood,
		},
		{
			name:    "synthesis failed",
			upd:     voiceUpdate(10),
			err:     &domain.PipelineError{Kind: domain.KindSynthesisFailed, Stage: domain.StageSynthesize},
			want:    msgErrorGeneric,
			alerted: true,
		},
		{
			name:    "llm timeout",
			upd:     voiceUpdate(10),
			err:     domain.UpstreamError(domain.StageGenerate, "complete", context.DeadlineExceeded),
			want:    msgErrorVoice,
			alerted: true,
		},
		{
			name: "transcript too long",
			upd:  voiceUpdate(10),
			err:  &domain.PipelineError{Kind: domain.KindInvalidInput, Stage: domain.StageGenerate, Err: domain.ErrTextTooLong},
			want: msgTranscriptTooLong,
		},
		{
			name: "audio too large after download",
			upd:  audioUpdate(0),
			err:  &domain.PipelineError{Kind: domain.KindInvalidInput, Stage: domain.StageIngest, Err: domain.ErrAudioTooLarge},
			want: msgAudioTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.bot.fileURL = fileServer(t, []byte("OggS")).URL
			f.pipeline.err = tt.err

			require.NoError(t, f.router.HandleUpdate(context.Background(), tt.upd))

			assert.Equal(t, []string{tt.want}, f.bot.texts())
			assert.Empty(t, f.bot.voices())
			if tt.alerted {
				assert.Equal(t, 1, f.alerter.Count())
			} else {
				assert.Zero(t, f.alerter.Count())
			}
		})
	}
}

func TestHandleUpdate_SendFailure(t *testing.T) {
	f := newFixture(t)
	f.bot.sendErr = assert.AnError
	f.pipeline.reply = "ok"

	err := f.router.HandleUpdate(context.Background(), textUpdate("сәлем"))
	assert.ErrorIs(t, err, assert.AnError)
}
