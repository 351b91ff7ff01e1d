package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/kz_voice/internal/domain"
	"github.com/Vovarama1992/kz_voice/internal/ports"
)

const (
	audioField = "audio"

	// тело запроса с запасом: файл больше 5 MiB должен дойти до валидации и получить 400
	maxUploadBody   = 2 * domain.MaxAudioSize
	multipartMemory = 8 << 20
)

// Alerter — уведомление операторов о сбоях провайдеров
type Alerter interface {
	NotifyAsync(ctx context.Context, err error, details string)
}

type VoiceHandler struct {
	pipeline ports.VoicePipeline
	alerter  Alerter
	log      *logger.ZapLogger
}

func NewVoiceHandler(pipeline ports.VoicePipeline, alerter Alerter, log *logger.ZapLogger) *VoiceHandler {
	return &VoiceHandler{
		pipeline: pipeline,
		alerter:  alerter,
		log:      log,
	}
}

// VoiceChat — POST /api/voice-chat: аудио в теле ответа, текст в заголовках.
func (h *VoiceHandler) VoiceChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.log.Log(logger.LogEntry{Level: "warn", Message: "upload too large", Error: err})
			writeError(w, http.StatusBadRequest, "Audio file too large", msgAudioTooLarge)
			return
		}
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		writeError(w, http.StatusBadRequest, "No audio file provided", msgNoAudio)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile(audioField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided", msgNoAudio)
		return
	}
	defer file.Close()

	// +1 байт, чтобы валидатор увидел превышение
	data, err := io.ReadAll(io.LimitReader(file, domain.MaxAudioSize+1))
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "read upload", Error: err})
		writeError(w, http.StatusBadRequest, "No audio file provided", msgNoAudio)
		return
	}

	res, err := h.pipeline.Run(r.Context(), ports.ChannelWeb, data)
	if err != nil {
		h.handlePipelineError(w, r, err)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", res.Audio.ContentType)
	hdr.Set("Content-Length", strconv.Itoa(len(res.Audio.Data)))
	hdr.Set(HeaderTranscript, EncodeHeaderText(res.Transcript.Text))
	hdr.Set(HeaderResponse, EncodeHeaderText(res.Reply))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Audio.Data); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "write audio response", Error: err})
	}
}

func (h *VoiceHandler) handlePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := pipelineErrorResponse(err)

	level := "warn"
	if status >= http.StatusInternalServerError {
		level = "error"
	}
	h.log.Log(logger.LogEntry{
		Level:   level,
		Message: fmt.Sprintf("voice-chat failed: kind=%s stage=%s", domain.KindOf(err), domain.StageOf(err)),
		Error:   err,
	})

	if h.alerter != nil && domain.IsUpstream(err) {
		h.alerter.NotifyAsync(r.Context(), err, fmt.Sprintf("канал: web, стадия: %s", domain.StageOf(err)))
	}

	writeJSON(w, status, body)
}
