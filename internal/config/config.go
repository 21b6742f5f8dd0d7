package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	TelegramBotToken  string
	ReplyTimeoutSec   int
	ConnectTimeoutSec int
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}

	cfg.ReplyTimeoutSec = getEnvAsInt("REPLY_TIMEOUT_SECONDS", 300)
	cfg.ConnectTimeoutSec = getEnvAsInt("CONNECT_TIMEOUT_SECONDS", 30)

	return cfg
}

func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("⚠️ Warning: %s must be int, using default %d\n", key, defaultVal)
		return defaultVal
	}
	return val
}
