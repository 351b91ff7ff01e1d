package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/kz_voice/internal/domain"
)

// тексты для пользователя (казахский)
const (
	msgNoAudio       = "Аудио файл жіберілмеді."
	msgAudioTooLarge = "Аудио файл тым үлкен. Қысқарақ аудио жіберіңіз (макс. 5 МБ)."
	msgTooLong       = "Сұрақ тым ұзын. Қысқарақ айтып көріңіз."
	msgNoSpeech      = "Дауысты тану мүмкін болмады. Аудиода сөз табылмады."
	msgGeneric       = "Кешіріңіз, қате орын алды. Кейінірек қайталап көріңіз."
	msgRateLimited   = "Сұраулар тым көп. Кейінірек қайталап көріңіз."
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

// pipelineErrorResponse — статус и тело для ошибки пайплайна. Детали провайдера наружу не уходят.
func pipelineErrorResponse(err error) (int, errorBody) {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		switch {
		case errors.Is(err, domain.ErrAudioTooLarge):
			return http.StatusBadRequest, errorBody{Error: "Audio file too large", Message: msgAudioTooLarge}
		case errors.Is(err, domain.ErrTextTooLong):
			return http.StatusBadRequest, errorBody{Error: "Transcript too long", Message: msgTooLong}
		}
		return http.StatusBadRequest, errorBody{Error: "No audio file provided", Message: msgNoAudio}
	case domain.KindNoSpeechDetected:
		return http.StatusBadRequest, errorBody{Error: "Could not transcribe audio", Message: msgNoSpeech}
	case domain.KindEmptyGeneration:
		return http.StatusInternalServerError, errorBody{Error: "Failed to generate response", Message: domain.FallbackNotUnderstood}
	case domain.KindSynthesisFailed:
		return http.StatusInternalServerError, errorBody{Error: "Failed to generate audio", Message: msgGeneric}
	default:
		return http.StatusInternalServerError, errorBody{Error: "Failed to process voice request", Message: domain.FallbackTechnical}
	}
}
