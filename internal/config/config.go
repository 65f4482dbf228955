package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ConfigError reports missing or malformed environment configuration. It is
// raised before any network activity.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type AppConfig struct {
	// Telegram bot credentials and destination chat.
	BotToken string `validate:"required"`
	ChatID   string `validate:"required"`

	// OpenWeather One Call API key for the primary provider.
	WeatherAPIKey string `validate:"required"`

	// Timeout applied to every outbound HTTP request.
	HTTPTimeout time.Duration

	// Daemon mode only: HTTP port and local time of the daily report.
	Port     string
	ReportAt string `validate:"required,datetime=15:04"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
// A .env file is honored when present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		BotToken:      os.Getenv("BOT_TOKEN"),
		ChatID:        os.Getenv("CHAT_ID"),
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		Port:          getenvDefault("PORT", "8080"),
		ReportAt:      getenvDefault("REPORT_AT", "20:00"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)}
	}
	cfg.HTTPTimeout = timeout

	if err := validate.Struct(cfg); err != nil {
		return nil, &ConfigError{Err: err}
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
