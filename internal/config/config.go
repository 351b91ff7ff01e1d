// Package config собирает настройки процесса из окружения (.env подхватывается через godotenv).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	STT      STTConfig
	LLM      LLMConfig
	TTS      TTSConfig
	Telegram TelegramConfig
	Logging  LoggingConfig

	DatabaseURL string // пусто — журнал прогонов выключен
}

type ServerConfig struct {
	Port            string
	FrontendOrigins []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	ShutdownTimeout time.Duration
}

type STTConfig struct {
	CredentialsBase64 string
	CredentialsFile   string
	APIKey            string
	Timeout           time.Duration
}

type LLMConfig struct {
	Provider     string // gemini | openai
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	Timeout      time.Duration
}

type TTSConfig struct {
	NarakeetAPIKey string
	Voice          string
	Timeout        time.Duration
}

type TelegramConfig struct {
	BotToken        string
	Mode            string // polling | webhook
	WebhookSecret   string
	DownloadTimeout time.Duration
	AdminChatIDs    []int64
}

type LoggingConfig struct {
	Level  string
	Format string
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != ""
}

// Load читает .env (если есть) и окружение.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	adminIDs, err := getEnvInt64List("ADMIN_CHAT_IDS")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvString("PORT", "3000"),
			FrontendOrigins: getEnvList("FRONTEND_URL", []string{"http://localhost:5173"}),
			RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 50),
			RateLimitWindow: 15 * time.Minute,
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		STT: STTConfig{
			CredentialsBase64: os.Getenv("GOOGLE_CREDENTIALS_BASE64"),
			CredentialsFile:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			APIKey:            os.Getenv("GOOGLE_STT_API_KEY"),
			Timeout:           getEnvDuration("STT_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(getEnvString("LLM_PROVIDER", "gemini")),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  getEnvString("GEMINI_MODEL", "gemini-2.5-flash"),
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:  getEnvString("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:      getEnvDuration("LLM_TIMEOUT", 22*time.Second),
		},
		TTS: TTSConfig{
			NarakeetAPIKey: os.Getenv("NARAKEET_API_KEY"),
			Voice:          getEnvString("NARAKEET_VOICE", "aidar"),
			Timeout:        getEnvDuration("TTS_TIMEOUT", 45*time.Second),
		},
		Telegram: TelegramConfig{
			BotToken:        os.Getenv("TELEGRAM_BOT_TOKEN"),
			Mode:            strings.ToLower(getEnvString("TELEGRAM_MODE", "polling")),
			WebhookSecret:   os.Getenv("TELEGRAM_WEBHOOK_SECRET"),
			DownloadTimeout: getEnvDuration("TELEGRAM_DOWNLOAD_TIMEOUT", 55*time.Second),
			AdminChatIDs:    adminIDs,
		},
		Logging: LoggingConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is empty")
	}
	if c.Server.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.Server.RateLimitMax)
	}

	switch c.LLM.Provider {
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is not set")
		}
	case "openai":
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (want gemini or openai)", c.LLM.Provider)
	}

	if c.TTS.NarakeetAPIKey == "" {
		return fmt.Errorf("NARAKEET_API_KEY is not set")
	}

	switch c.Telegram.Mode {
	case "polling", "webhook":
	default:
		return fmt.Errorf("unknown TELEGRAM_MODE %q (want polling or webhook)", c.Telegram.Mode)
	}

	for name, d := range map[string]time.Duration{
		"STT_TIMEOUT":               c.STT.Timeout,
		"LLM_TIMEOUT":               c.LLM.Timeout,
		"TTS_TIMEOUT":               c.TTS.Timeout,
		"TELEGRAM_DOWNLOAD_TIMEOUT": c.Telegram.DownloadTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func getEnvString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// getEnvDuration понимает "30s" и просто число секунд
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getEnvInt64List(key string) ([]int64, error) {
	var out []int64
	for _, p := range getEnvList(key, nil) {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad chat id %q: %w", key, p, err)
		}
		out = append(out, id)
	}
	return out, nil
}
