package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/Vovarama1992/kz_voice/internal/ai"
	"github.com/Vovarama1992/kz_voice/internal/config"
	"github.com/Vovarama1992/kz_voice/internal/delivery"
	"github.com/Vovarama1992/kz_voice/internal/domain"
	"github.com/Vovarama1992/kz_voice/internal/error_notificator"
	"github.com/Vovarama1992/kz_voice/internal/infra"
	"github.com/Vovarama1992/kz_voice/internal/ports"
	"github.com/Vovarama1992/kz_voice/internal/speech"
	"github.com/Vovarama1992/kz_voice/internal/telegram"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// RUN JOURNAL (опционально)
	// =========================================================================

	var recorder ports.RunRecorder
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			baseLogger.Fatal("failed to open postgres", zap.Error(err))
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		if err == nil {
			err = infra.EnsureRunsTable(pingCtx, db)
		}
		cancel()
		if err != nil {
			baseLogger.Fatal("db init failed", zap.Error(err))
		}
		recorder = infra.NewRunRepo(db)
	} else {
		baseLogger.Info("DATABASE_URL is not set, run journal disabled")
	}

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	errInfra := error_notificator.NewInfra(nil, cfg.Telegram.AdminChatIDs, baseLogger)
	errService := error_notificator.NewService(errInfra, baseLogger)

	// =========================================================================
	// CLIENTS (STT / LLM / TTS)
	// =========================================================================

	sttClient, err := ai.NewGoogleSTTClient(ctx, ai.GoogleCredentials{
		CredentialsBase64: cfg.STT.CredentialsBase64,
		CredentialsFile:   cfg.STT.CredentialsFile,
		APIKey:            cfg.STT.APIKey,
	})
	if err != nil {
		baseLogger.Fatal("failed to init google stt", zap.Error(err))
	}

	llmClient, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		baseLogger.Fatal("failed to init llm", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	}

	ttsClient := speech.NewNarakeetClient(cfg.TTS.NarakeetAPIKey, cfg.TTS.Voice, "", nil)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	pipeline := domain.NewPipeline(
		domain.NewTranscriptionService(sttClient, cfg.STT.Timeout, baseLogger),
		domain.NewResponseService(llmClient, cfg.LLM.Timeout, baseLogger),
		domain.NewSynthesisService(ttsClient, cfg.TTS.Timeout, baseLogger),
		recorder,
		baseLogger,
	)

	// =========================================================================
	// TELEGRAM BOT
	// =========================================================================

	var (
		bot       *tgbotapi.BotAPI
		botRouter delivery.UpdateHandler
	)
	if cfg.Telegram.Enabled() {
		bot, err = tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			baseLogger.Fatal("failed to init telegram bot", zap.Error(err))
		}
		errInfra.SetBot(bot)
		botRouter = telegram.NewRouter(bot, pipeline, errService, cfg.Telegram.DownloadTimeout, baseLogger)
		baseLogger.Info("[bot] ready", zap.String("username", bot.Self.UserName), zap.String("mode", cfg.Telegram.Mode))
	} else {
		baseLogger.Warn("TELEGRAM_BOT_TOKEN is not set, bot disabled")
	}

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	router := delivery.NewRouter(
		cfg.Server.FrontendOrigins,
		delivery.NewVoiceHandler(pipeline, errService, zl),
		delivery.NewHealthHandler(),
		delivery.NewWebhookHandler(botRouter, cfg.Telegram.WebhookSecret, zl),
		delivery.RateLimit{Max: cfg.Server.RateLimitMax, Window: cfg.Server.RateLimitWindow},
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// =========================================================================
	// START
	// =========================================================================

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "listening at " + srv.Addr,
			Service: "kz_voice",
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if bot != nil && cfg.Telegram.Mode == "polling" {
		poller := telegram.NewPoller(bot, botRouter, baseLogger)
		g.Go(func() error {
			return poller.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		baseLogger.Error("server error", zap.Error(err))
		return
	}
	baseLogger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func newLLMClient(ctx context.Context, cfg config.LLMConfig) (ports.LLMProvider, error) {
	switch cfg.Provider {
	case "openai":
		return ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, ""), nil
	default:
		return ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
	}
}
