package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramBotToken string
	PerplexityAPIKey string

	// WebhookURL switches update delivery from long polling to webhook mode.
	// WebhookSecret is echoed by Telegram in X-Telegram-Bot-Api-Secret-Token
	// and checked on every incoming update.
	WebhookURL    string
	WebhookSecret string

	Port string
}

func Load() (*Config, error) {
	// .env is optional; env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		PerplexityAPIKey: os.Getenv("PERPLEXITY_API_KEY"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
		WebhookSecret:    os.Getenv("WEBHOOK_SECRET"),
		Port:             os.Getenv("PORT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.WebhookURL != "" && cfg.WebhookSecret == "" {
		secret, err := randomHex(16)
		if err != nil {
			return nil, fmt.Errorf("generating webhook secret: %w", err)
		}
		cfg.WebhookSecret = secret
	}

	for _, req := range []struct {
		name, val string
	}{
		{"TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken},
		{"PERPLEXITY_API_KEY", cfg.PerplexityAPIKey},
	} {
		if req.val == "" {
			return nil, fmt.Errorf("required env var %s is not set", req.name)
		}
	}

	return cfg, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
