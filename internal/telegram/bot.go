package telegram

import (
	"context"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botAPI is the subset of the *tgbotapi.BotAPI surface the bot actually uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Bot struct {
	api          botAPI
	beginLogin   BeginLogin
	replyTimeout time.Duration

	mu     sync.Mutex
	active map[convKey]*conversation // one conversation per (chat, user)
}

func New(api botAPI, begin BeginLogin, replyTimeout time.Duration) *Bot {
	return &Bot{
		api:          api,
		beginLogin:   begin,
		replyTimeout: replyTimeout,
		active:       make(map[convKey]*conversation),
	}
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message == nil { // ignore non-message updates
				continue
			}
			b.handleMessage(ctx, upd.Message)
		}
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("telegram send error: %v", err)
	}
}
