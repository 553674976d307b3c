/*
Package config loads the watcher configuration from environment variables.
*/
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	RecipientEmail        string `env:"RECIPIENT_EMAIL"`
	TelegramUsernames     string `env:"TELEGRAM_USERNAMES"`
	NumOfEmailsToSend     int    `env:"NUM_OF_EMAILS_TO_SEND" default:"1"`
	IntervalBetweenEmails int    `env:"INTERVAL_BETWEEN_EMAILS" default:"30"`
	FetchStatusDelay      int    `env:"FETCH_STATUS_DELAY" default:"60"`
	TicketsPageURL        string `env:"TICKETS_PAGE_URL"`

	SMTPHost  string `env:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort  int    `env:"SMTP_PORT" default:"587"`
	EmailUser string `env:"EMAIL_USER"`
	EmailPass string `env:"EMAIL_PASS"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"RECIPIENT_EMAIL":    cfg.RecipientEmail,
		"TELEGRAM_USERNAMES": cfg.TelegramUsernames,
		"TICKETS_PAGE_URL":   cfg.TicketsPageURL,
		"EMAIL_USER":         cfg.EmailUser,
		"EMAIL_PASS":         cfg.EmailPass,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.NumOfEmailsToSend < 1 {
		return fmt.Errorf("NUM_OF_EMAILS_TO_SEND must be at least 1, got %d", cfg.NumOfEmailsToSend)
	}
	if cfg.IntervalBetweenEmails < 0 {
		return fmt.Errorf("INTERVAL_BETWEEN_EMAILS must not be negative, got %d", cfg.IntervalBetweenEmails)
	}
	if cfg.FetchStatusDelay < 1 {
		return fmt.Errorf("FETCH_STATUS_DELAY must be at least 1 second, got %d", cfg.FetchStatusDelay)
	}

	return nil
}

// Recipients returns the email recipient list from the comma-separated
// RECIPIENT_EMAIL value.
func (c *Config) Recipients() []string {
	return splitList(c.RecipientEmail)
}

// Usernames returns the Telegram username list from the comma-separated
// TELEGRAM_USERNAMES value.
func (c *Config) Usernames() []string {
	return splitList(c.TelegramUsernames)
}

func (c *Config) SendInterval() time.Duration {
	return time.Duration(c.IntervalBetweenEmails) * time.Second
}

func (c *Config) PollDelay() time.Duration {
	return time.Duration(c.FetchStatusDelay) * time.Second
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	var items []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
