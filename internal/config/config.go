// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application.
type Config struct {
	// DatabaseURL selects the Postgres-backed store. When empty the
	// in-memory store is used instead.
	DatabaseURL string

	LogLevel       string
	SettingsDBPath string

	// DefaultUserID is the user the CLI and the watch daemon act as.
	DefaultUserID string

	// DefaultDailyLimit seeds the per-user daily limit when unset.
	DefaultDailyLimit decimal.Decimal

	// TelegramBotToken and TelegramChatID enable Telegram budget alerts.
	// Both must be set together; alerts fall back to the log otherwise.
	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		SettingsDBPath:    os.Getenv("SETTINGS_DB_PATH"),
		DefaultUserID:     os.Getenv("BUDGET_USER_ID"),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		DefaultDailyLimit: decimal.NewFromInt(100000),
	}

	if cfg.SettingsDBPath == "" {
		cfg.SettingsDBPath = "budget-settings.db"
	}
	if cfg.DefaultUserID == "" {
		cfg.DefaultUserID = "local"
	}

	if limitStr := os.Getenv("DEFAULT_DAILY_LIMIT"); limitStr != "" {
		limit, err := decimal.NewFromString(limitStr)
		if err == nil && !limit.IsNegative() {
			cfg.DefaultDailyLimit = limit
		}
	}

	if chatStr := os.Getenv("TELEGRAM_CHAT_ID"); chatStr != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(chatStr), 10, 64)
		if err == nil {
			cfg.TelegramChatID = id
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// TelegramEnabled reports whether Telegram alert delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// validate checks that the configuration is coherent.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken != "" && c.TelegramChatID == 0 {
		errs = append(errs, "TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	if c.TelegramBotToken == "" && c.TelegramChatID != 0 {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required when TELEGRAM_CHAT_ID is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
