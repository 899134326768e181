package config

import (
	"os"
	"strconv"
)

type Config struct {
	BotToken        string
	AdminID         int64
	AppURL          string
	Port            int
	PingIntervalMin int
	FilesDir        string
}

func Load() Config {
	return Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		AdminID:         getenvInt64("ADMIN_ID", 0),
		AppURL:          os.Getenv("APP_URL"),
		Port:            getenvInt("PORT", 3000),
		PingIntervalMin: getenvInt("PING_INTERVAL_MIN", 14),
		FilesDir:        getenv("FILES_DIR", "files"),
	}
}

// WebhookMode reports whether a public URL is configured. Without it the
// bot falls back to long polling.
func (c Config) WebhookMode() bool { return c.AppURL != "" }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
