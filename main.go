package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/frsammm1/telethon-session-gen/internal/account"
	"github.com/frsammm1/telethon-session-gen/internal/config"
	"github.com/frsammm1/telethon-session-gen/internal/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ no .env file found, using environment as is")
	}

	cfg := config.Load()
	if cfg.TelegramBotToken == "" {
		log.Fatal("❌ TELEGRAM_BOT_TOKEN is required")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("❌ bot init: %v", err)
	}
	api.Debug = false
	log.Printf("🤖 Bot started: %s", api.Self.UserName)

	acc := account.NewClient(time.Duration(cfg.ConnectTimeoutSec) * time.Second)
	bot := telegram.New(api,
		func(ctx context.Context, apiID int, apiHash, phone string) (telegram.Login, error) {
			return acc.Begin(ctx, apiID, apiHash, phone)
		},
		time.Duration(cfg.ReplyTimeoutSec)*time.Second,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("❌ bot run: %v", err)
	}
	log.Println("Bot stopped.")
}
