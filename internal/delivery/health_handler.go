package delivery

import (
	"net/http"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(isoMillis),
	})
}

func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "AI Voice Assistant API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":    "GET /api/health",
			"voiceChat": "POST /api/voice-chat",
			"telegram":  "POST /api/telegram-webhook",
		},
	})
}
