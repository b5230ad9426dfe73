package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Telegram
	TelegramToken string

	// PandaScore API
	PandaScoreToken string

	// Polling
	PollingIntervalSeconds int

	// Upstream request timeout
	RequestTimeoutSeconds int

	// Metrics listener address, empty disables the endpoint
	MetricsAddr string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		PandaScoreToken: os.Getenv("PANDASCORE_TOKEN"),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
	}

	// Parse polling interval
	pollingStr := getEnvOrDefault("POLLING_INTERVAL_SECONDS", "60")
	polling, err := strconv.Atoi(pollingStr)
	if err != nil {
		return nil, fmt.Errorf("invalid POLLING_INTERVAL_SECONDS: %w", err)
	}
	cfg.PollingIntervalSeconds = polling

	// Parse request timeout
	timeoutStr := getEnvOrDefault("REQUEST_TIMEOUT_SECONDS", "10")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %w", err)
	}
	cfg.RequestTimeoutSeconds = timeout

	// Validate required fields
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.PandaScoreToken == "" {
		return nil, fmt.Errorf("PANDASCORE_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
