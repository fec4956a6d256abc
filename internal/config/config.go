package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the configuration for the client toolkit.
type Config struct {
	APIBaseURL string
	DataDir    string

	// Telegram relay config (optional for the CLI, required for the bot)
	TelegramBotToken string
	TelegramChatID   int64

	// Polling interval for the notification relay, in seconds.
	NotifyPollSeconds int
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	apiBaseURL := os.Getenv("PLATELY_API_URL")
	if apiBaseURL == "" {
		return nil, fmt.Errorf("PLATELY_API_URL environment variable not set")
	}

	dataDir := os.Getenv("PLATELY_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory for default data dir: %w", err)
		}
		dataDir = filepath.Join(home, ".plately")
	}

	telegramBotToken := os.Getenv("PLATELY_TELEGRAM_BOT_TOKEN")

	var telegramChatID int64
	if v := os.Getenv("PLATELY_TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid PLATELY_TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		telegramChatID = id
	}

	pollSeconds := 60
	if v := os.Getenv("PLATELY_NOTIFY_POLL_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid PLATELY_NOTIFY_POLL_SECONDS %q", v)
		}
		pollSeconds = n
	}

	return &Config{
		APIBaseURL:        apiBaseURL,
		DataDir:           dataDir,
		TelegramBotToken:  telegramBotToken,
		TelegramChatID:    telegramChatID,
		NotifyPollSeconds: pollSeconds,
	}, nil
}

// DatabasePath returns the path of the local SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "plately.db")
}

// CachePath returns the base directory for the disk cache.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "cache")
}
