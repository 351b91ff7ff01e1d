package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// RateLimit — лимит запросов на /api/* с одного IP
type RateLimit struct {
	Max    int
	Window time.Duration
}

// CORSOptions: X-Transcript и X-Response должны быть в ExposedHeaders.
func CORSOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{HeaderTranscript, HeaderResponse},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func rateLimited(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later.", msgRateLimited)
}

func RegisterRoutes(
	r chi.Router,
	hVoice *VoiceHandler,
	hHealth *HealthHandler,
	hWebhook *WebhookHandler,
	limit RateLimit,
) {
	r.Use(httputil.RecoverMiddleware)

	r.Get("/", hHealth.Root)

	// --- telegram (вне лимита) ---
	r.Post("/api/telegram-webhook", hWebhook.Telegram)

	// --- api ---
	r.Group(func(ar chi.Router) {
		if limit.Max > 0 {
			ar.Use(httprate.Limit(
				limit.Max,
				limit.Window,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(rateLimited),
			))
		}

		ar.Get("/api/health", hHealth.Health)
		ar.Post("/api/voice-chat", hVoice.VoiceChat)
	})
}

func NewRouter(
	origins []string,
	hVoice *VoiceHandler,
	hHealth *HealthHandler,
	hWebhook *WebhookHandler,
	limit RateLimit,
) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(CORSOptions(origins)))
	RegisterRoutes(r, hVoice, hHealth, hWebhook, limit)
	return r
}
