package config

import (
	"os"
	"time"
)

type Config struct {
	DatabaseURL  string
	JWTSecret    string
	HTTPAddr     string
	Location     *time.Location
	LogLevel     string
	Env          string // dev|prod
	SentryDSN    string
	BotToken     string // optional: Telegram notification sink
	NotifyChatID string // optional: chat for the Telegram sink
	SeedDemo     bool
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Asia/Ho_Chi_Minh")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	cfg := &Config{
		DatabaseURL:  mustEnv("DATABASE_URL"),
		JWTSecret:    mustEnv("JWT_SECRET"),
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		Location:     loc,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		Env:          getenv("ENV", "dev"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
		BotToken:     os.Getenv("BOT_TOKEN"),
		NotifyChatID: os.Getenv("NOTIFY_CHAT_ID"),
		SeedDemo:     getenv("SEED_DEMO", "") == "1",
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
